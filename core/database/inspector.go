package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrRoutinesUnsupported is returned for dialects without stored procedures.
var ErrRoutinesUnsupported = errors.New("dialect does not support stored procedures")

// ParamInfo describes one declared parameter of a stored procedure.
type ParamInfo struct {
	Name     string `gorm:"column:PARAMETER_NAME"`
	Mode     string `gorm:"column:PARAMETER_MODE"`
	DataType string `gorm:"column:DATA_TYPE"`
	Position int    `gorm:"column:ORDINAL_POSITION"`
}

// ProcedureExists reports whether the current schema declares the procedure.
func ProcedureExists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	if db.Dialector.Name() != "mysql" {
		return false, ErrRoutinesUnsupported
	}

	var count int64
	err := db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM information_schema.ROUTINES WHERE ROUTINE_SCHEMA = DATABASE() AND ROUTINE_TYPE = 'PROCEDURE' AND ROUTINE_NAME = ?",
		name,
	).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up procedure %s: %w", name, err)
	}
	return count > 0, nil
}

// GetProcedureParams retrieves the declared parameters of a procedure in
// declaration order. A procedure without parameters yields an empty slice.
func GetProcedureParams(ctx context.Context, db *gorm.DB, name string) ([]ParamInfo, error) {
	if db.Dialector.Name() != "mysql" {
		return nil, ErrRoutinesUnsupported
	}

	var params []ParamInfo
	err := db.WithContext(ctx).Raw(
		"SELECT PARAMETER_NAME, PARAMETER_MODE, DATA_TYPE, ORDINAL_POSITION FROM information_schema.PARAMETERS "+
			"WHERE SPECIFIC_SCHEMA = DATABASE() AND SPECIFIC_NAME = ? AND ROUTINE_TYPE = 'PROCEDURE' AND ORDINAL_POSITION > 0 "+
			"ORDER BY ORDINAL_POSITION",
		name,
	).Scan(&params).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get parameters for procedure %s: %w", name, err)
	}

	for i := range params {
		params[i].DataType = strings.ToLower(params[i].DataType)
		params[i].Mode = strings.ToUpper(params[i].Mode)
	}
	if params == nil {
		params = []ParamInfo{}
	}
	return params, nil
}
