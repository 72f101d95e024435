package department

import (
	"cnet-api/core/procedure"
	"cnet-api/core/utils"
)

// Department is one row of the department hierarchy view.
type Department struct {
	DeptCode   string         `json:"deptCode"`
	DeptName   string         `json:"deptName"`
	ParentCode string         `json:"parentCode"`
	DeptLevel  int            `json:"deptLevel"`
	SortNo     int            `json:"sortNo"`
	IsEnabled  bool           `json:"isEnabled"`
	UpdatedAt  utils.DateTime `json:"updatedAt" swaggertype:"string" example:"2024-01-31 08:30:00"`

	// Parent and Children are only populated by Nest.
	Parent   *Department   `json:"-"`
	Children []*Department `json:"children,omitempty"`
}

// Shape maps the procedure's result columns onto Department.
var Shape = procedure.Shape[Department]{
	"DeptCode":   func(d *Department, v any) { d.DeptCode = utils.ToString(v) },
	"DeptName":   func(d *Department, v any) { d.DeptName = utils.ToString(v) },
	"ParentCode": func(d *Department, v any) { d.ParentCode = utils.ToString(v) },
	"DeptLevel":  func(d *Department, v any) { d.DeptLevel = utils.ToInt(v) },
	"SortNo":     func(d *Department, v any) { d.SortNo = utils.ToInt(v) },
	"IsEnabled":  func(d *Department, v any) { d.IsEnabled = utils.ToBool(v) },
	"UpdatedAt":  func(d *Department, v any) { d.UpdatedAt = utils.DateTime(utils.ToTime(v)) },
}

// Nest links a flat list into trees. A department whose parent is not in the
// list (or is itself) becomes a root. Input order is kept among siblings.
func Nest(depts []Department) []*Department {
	nodes := make([]*Department, len(depts))
	byCode := make(map[string]*Department, len(depts))
	for i := range depts {
		d := depts[i]
		d.Parent, d.Children = nil, nil
		nodes[i] = &d
		if _, dup := byCode[d.DeptCode]; !dup {
			byCode[d.DeptCode] = &d
		}
	}

	roots := make([]*Department, 0)
	for _, n := range nodes {
		parent, ok := byCode[n.ParentCode]
		if !ok || parent == n {
			roots = append(roots, n)
			continue
		}
		n.Parent = parent
		parent.Children = append(parent.Children, n)
	}
	return roots
}
