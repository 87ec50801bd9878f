// Package access decides what an authenticated user may see and do.
package access

import (
	"fmt"

	"edeon_enerji/internal/domain"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
	Sites  []string // only meaningful for customers
}

// Ref is the identity stored on documents the principal creates.
func (p Principal) Ref() domain.UserRef {
	return domain.UserRef{ID: p.UserID, Ad: p.Name, Rol: p.Role}
}

// Action is a guarded operation.
type Action string

const (
	ReadAll           Action = "read"
	WritePlant        Action = "plant:write"
	DeletePlant       Action = "plant:delete"
	WriteProduction   Action = "production:write"
	DeleteProduction  Action = "production:delete"
	CreateFault       Action = "fault:create"
	UpdateFault       Action = "fault:update"
	CommentFault      Action = "fault:comment"
	DeleteFault       Action = "fault:delete"
	WriteMaintenance  Action = "maintenance:write"
	DeleteMaintenance Action = "maintenance:delete"
	WriteWorkReport   Action = "workreport:write"
	DeleteWorkReport  Action = "workreport:delete"
	WriteStock        Action = "stock:write"
	WriteSite         Action = "site:write"
	DeleteSite        Action = "site:delete"
	ManageUsers       Action = "user:manage"
	Upload            Action = "upload"
)

var (
	staff     = []domain.Role{domain.RoleManager, domain.RoleTechnician, domain.RoleEngineer}
	managers  = []domain.Role{domain.RoleManager}
	nonGuards = []domain.Role{domain.RoleManager, domain.RoleTechnician, domain.RoleEngineer, domain.RoleCustomer}
	everyone  = domain.Roles
)

var rules = map[Action][]domain.Role{
	ReadAll:           everyone,
	WritePlant:        staff,
	DeletePlant:       managers,
	WriteProduction:   staff,
	DeleteProduction:  staff,
	CreateFault:       nonGuards,
	UpdateFault:       staff,
	CommentFault:      nonGuards,
	DeleteFault:       managers,
	WriteMaintenance:  staff,
	DeleteMaintenance: staff,
	WriteWorkReport:   staff,
	DeleteWorkReport:  staff,
	WriteStock:        staff,
	WriteSite:         managers,
	DeleteSite:        managers,
	ManageUsers:       managers,
	Upload:            nonGuards,
}

// RolesFor returns the roles allowed to perform a.
func RolesFor(a Action) []domain.Role {
	out := make([]domain.Role, len(rules[a]))
	copy(out, rules[a])
	return out
}

// Can reports whether p may perform a.
func (p Principal) Can(a Action) bool {
	for _, r := range rules[a] {
		if r == p.Role {
			return true
		}
	}
	return false
}

// Require returns a wrapped domain.ErrForbidden when p may not perform a.
func (p Principal) Require(a Action) error {
	if p.Can(a) {
		return nil
	}
	return fmt.Errorf("%s as %s: %w", a, p.Role, domain.ErrForbidden)
}

// Scope returns the visibility scope of p. Customers are limited to
// their assigned ids, an empty assignment seeing nothing.
func (p Principal) Scope() domain.Scope {
	if p.Role == domain.RoleCustomer {
		return domain.Restrict(p.Sites)
	}
	return domain.Unrestricted
}

// RequireSite returns domain.ErrForbidden when id is outside p's scope.
func (p Principal) RequireSite(id string) error {
	if p.Scope().Allows(id) {
		return nil
	}
	return fmt.Errorf("site %s: %w", id, domain.ErrForbidden)
}
