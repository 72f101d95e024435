package procedure

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cnet-api/core/database"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Registry maps logical identifiers to procedure declarations.
// It is immutable after NewRegistry returns.
type Registry struct {
	procs map[string]Procedure
}

// NewRegistry validates and indexes the declarations.
func NewRegistry(procs ...Procedure) (*Registry, error) {
	r := &Registry{procs: make(map[string]Procedure, len(procs))}
	for _, p := range procs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.procs[p.ID]; dup {
			return nil, fmt.Errorf("procedure %s registered twice", p.ID)
		}
		p.Params = append([]string(nil), p.Params...)
		r.procs[p.ID] = p
	}
	return r, nil
}

// MustRegistry is NewRegistry for static declarations; it panics on error.
func MustRegistry(procs ...Procedure) *Registry {
	r, err := NewRegistry(procs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the declaration registered under id.
func (r *Registry) Lookup(id string) (Procedure, bool) {
	p, ok := r.procs[id]
	return p, ok
}

// All returns every declaration ordered by ID.
func (r *Registry) All() []Procedure {
	out := make([]Procedure, 0, len(r.procs))
	for _, p := range r.procs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Verify compares every declaration with the routines the backend declares.
// It returns one error per missing routine or parameter list mismatch.
// Dialects without stored procedures are skipped.
func (r *Registry) Verify(ctx context.Context, db *gorm.DB) error {
	var result error
	for _, p := range r.All() {
		routine := p.Routine
		if i := strings.LastIndex(routine, "."); i >= 0 {
			routine = routine[i+1:]
		}

		exists, err := database.ProcedureExists(ctx, db, routine)
		if errors.Is(err, database.ErrRoutinesUnsupported) {
			return nil
		}
		if err != nil {
			result = multierr.Append(result, newError(p, ErrBackend, err))
			continue
		}
		if !exists {
			result = multierr.Append(result, newError(p, ErrUnknownProcedure, nil))
			continue
		}

		declared, err := database.GetProcedureParams(ctx, db, routine)
		if err != nil {
			result = multierr.Append(result, newError(p, ErrBackend, err))
			continue
		}
		if !sameParams(p.Params, declared) {
			names := make([]string, len(declared))
			for i, d := range declared {
				names[i] = d.Name
			}
			result = multierr.Append(result, newError(p, ErrParameterMismatch,
				fmt.Errorf("registered %v, backend declares %v", p.Params, names)))
		}
	}
	return result
}

func sameParams(registered []string, declared []database.ParamInfo) bool {
	if len(registered) != len(declared) {
		return false
	}
	for i := range registered {
		if !strings.EqualFold(registered[i], declared[i].Name) {
			return false
		}
	}
	return true
}
