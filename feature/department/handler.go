package department

import (
	"cnet-api/core/logger"
	"cnet-api/core/middleware/authn"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for departments.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the department routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/departments")
	group.Get("/children", h.HandleSearchChildren)
	group.Get("/:code/children", h.HandleSearchChildren)
}

// HandleSearchChildren returns the child departments of a department.
// @Summary Search Child Departments
// @Description List the departments below the given department, in database order. Defaults to D000001.
// @Tags departments
// @Produce json
// @Security Bearer
// @Param code path string false "Department code (e.g. 'D000001')"
// @Param code query string false "Department code when not given in the path"
// @Param nested query bool false "Return the result as a tree"
// @Success 200 {array} Department "Departments"
// @Failure 400 {object} apierror.Response "Invalid department code"
// @Failure 401 {object} apierror.Response "Missing or invalid bearer token"
// @Failure 502 {object} apierror.Response "Data access failed"
// @Router /departments/{code}/children [get]
// @Router /departments/children [get]
func (h *Handler) HandleSearchChildren(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		code = c.Query("code")
	}

	l := logger.WithRayID(h.service.logger, c)
	if p, ok := authn.Principal(c); ok {
		l = l.With(zap.String("subject", p.Subject), zap.String("tenant", p.Tenant))
	}

	depts, err := h.service.SearchChildren(c.UserContext(), code)
	if err != nil {
		return err
	}
	l.Debug("Department children listed", zap.String("code", code), zap.Int("count", len(depts)))

	if c.QueryBool("nested") {
		return c.JSON(Nest(depts))
	}
	return c.JSON(depts)
}
