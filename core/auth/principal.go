package auth

import (
	"slices"
	"time"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	Subject   string    `json:"subject"`
	Name      string    `json:"name,omitempty"`
	Tenant    string    `json:"tenant,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	ExpiresAt time.Time `json:"-"`
}

// HasRole reports whether the principal carries role.
func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal carries at least one of roles.
// An empty list is satisfied by any principal.
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

func principalFromClaims(c *Claims) *Principal {
	p := &Principal{
		Subject: c.Subject,
		Name:    c.Name,
		Tenant:  c.Tenant,
		Roles:   c.Roles,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
