package department

import (
	"context"
	"regexp"
	"slices"

	"cnet-api/core/apierror"
	"cnet-api/core/procedure"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCode is the root of the department hierarchy.
	DefaultCode = "D000001"
	// ProcSearchChildren is the registry ID of the child-department lookup.
	ProcSearchChildren = "search-child-department"
)

// Procedures declares the stored procedures this feature calls.
var Procedures = []procedure.Procedure{
	{ID: ProcSearchChildren, Routine: "p_SearchChildDept", Params: []string{"deptCodeIn"}},
}

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// Service handles department lookups.
type Service struct {
	exec   *procedure.Executor
	logger *zap.Logger
	// inflight shares one database call between concurrent lookups of the same code.
	inflight singleflight.Group
}

// NewService creates a new department service.
func NewService(exec *procedure.Executor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{exec: exec, logger: logger}
}

// SearchChildren returns the departments below code, in the order the
// database returns them. An empty code means DefaultCode.
func (s *Service) SearchChildren(ctx context.Context, code string) ([]Department, error) {
	if code == "" {
		code = DefaultCode
	}
	if !codePattern.MatchString(code) {
		return nil, apierror.BadRequest("invalid department code")
	}

	// The shared call must not die with whichever caller started it; the
	// executor's timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(code, func() (any, error) {
		return procedure.Query(shared, s.exec, ProcSearchChildren,
			procedure.Params{procedure.P("deptCodeIn", code)}, Shape)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("Joined in-flight department lookup", zap.String("code", code))
		}
		return slices.Clone(res.Val.([]Department)), nil
	}
}
