package department_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"cnet-api/core/apierror"
	"cnet-api/core/procedure"
	"cnet-api/feature/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	exec := procedure.NewExecutor(db, procedure.MustRegistry(department.Procedures...), procedure.Config{Timeout: time.Second})
	app := fiber.New(fiber.Config{
		ErrorHandler: apierror.Handler(zap.NewNop(), procedure.Classify),
	})
	f := department.NewFeature(exec, zap.NewNop())
	require.NoError(t, f.Load(app.Group("/api")))
	return app, mock
}

func decode[T any](t *testing.T, body io.Reader) T {
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleSearchChildren_PathAndQuery(t *testing.T) {
	app, mock := setupApp(t)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"DeptCode", "DeptName", "ParentCode", "UpdatedAt"}).
			AddRow("D000002", "Finance", "D000001", "2024-01-31 08:30:00")
	}
	mock.ExpectQuery(regexp.QuoteMeta("CALL `p_SearchChildDept`(?)")).WithArgs("D000001").WillReturnRows(rows())
	mock.ExpectQuery(regexp.QuoteMeta("CALL `p_SearchChildDept`(?)")).WithArgs("D000007").WillReturnRows(rows())

	for _, target := range []string{"/api/departments/children", "/api/departments/D000007/children"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, target)

		got := decode[[]map[string]any](t, resp.Body)
		require.Len(t, got, 1)
		assert.Equal(t, "D000002", got[0]["deptCode"])
		assert.Equal(t, "2024-01-31 08:30:00", got[0]["updatedAt"])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleSearchChildren_Nested(t *testing.T) {
	app, mock := setupApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("CALL `p_SearchChildDept`(?)")).
		WithArgs("D000001").
		WillReturnRows(sqlmock.NewRows([]string{"DeptCode", "ParentCode"}).
			AddRow("D000003", "D000001").
			AddRow("D000004", "D000003"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/departments/children?code=D000001&nested=true", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	got := decode[[]department.Department](t, resp.Body)
	require.Len(t, got, 1)
	require.Len(t, got[0].Children, 1)
	assert.Equal(t, "D000004", got[0].Children[0].DeptCode)
}

func TestHandleSearchChildren_Errors(t *testing.T) {
	app, mock := setupApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("CALL `p_SearchChildDept`(?)")).
		WillReturnError(io.ErrUnexpectedEOF)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/departments/children?code=bad%20code", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, apierror.KindBadRequest, decode[apierror.Response](t, resp.Body).Kind)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/departments/D000001/children", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
	body := decode[apierror.Response](t, resp.Body)
	assert.Equal(t, apierror.KindDataAccess, body.Kind)
	assert.Equal(t, "data access failed", body.Message)
}
