package procedure

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// routinePattern admits plain or schema-qualified identifiers.
	routinePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)
	paramPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Procedure declares a backend routine callable through the executor.
type Procedure struct {
	// ID is the logical identifier handlers use, e.g. "search-child-department".
	ID string
	// Routine is the backend routine name, e.g. "p_SearchChildDept".
	Routine string
	// Params lists the declared formal parameters in declaration order.
	Params []string
}

// Validate checks the declaration itself.
func (p Procedure) Validate() error {
	if p.ID == "" {
		return errors.New("procedure id is required")
	}
	if !routinePattern.MatchString(p.Routine) {
		return fmt.Errorf("procedure %s: invalid routine name %q", p.ID, p.Routine)
	}
	seen := make(map[string]bool, len(p.Params))
	for _, name := range p.Params {
		if !paramPattern.MatchString(name) {
			return fmt.Errorf("procedure %s: invalid parameter name %q", p.ID, name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("procedure %s: duplicate parameter %q", p.ID, name)
		}
		seen[key] = true
	}
	return nil
}

// statement renders the CALL statement with one placeholder per parameter.
func (p Procedure) statement() string {
	parts := strings.Split(p.Routine, ".")
	for i, part := range parts {
		parts[i] = "`" + part + "`"
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(p.Params)), ",")
	return "CALL " + strings.Join(parts, ".") + "(" + placeholders + ")"
}

// Param is one named argument.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered parameter bag.
type Params []Param

// P builds a Param.
func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// bind orders the bag by declaration. Names match case-insensitively, as
// MySQL routine parameters do. Missing, extra and duplicate names all fail.
func (p Procedure) bind(params Params) ([]any, error) {
	byName := make(map[string]any, len(params))
	for _, param := range params {
		key := strings.ToLower(param.Name)
		if _, dup := byName[key]; dup {
			return nil, fmt.Errorf("parameter %q given twice", param.Name)
		}
		byName[key] = param.Value
	}

	args := make([]any, 0, len(p.Params))
	var missing []string
	for _, name := range p.Params {
		key := strings.ToLower(name)
		v, ok := byName[key]
		if !ok {
			missing = append(missing, name)
			continue
		}
		args = append(args, v)
		delete(byName, key)
	}

	if len(missing) > 0 || len(byName) > 0 {
		extra := make([]string, 0, len(byName))
		for name := range byName {
			extra = append(extra, name)
		}
		sort.Strings(extra)
		return nil, fmt.Errorf("missing %v, unexpected %v", missing, extra)
	}
	return args, nil
}
