// Package authz is the single place where role and ownership rules are
// decided. Services describe what they need (a role gate, or a relation
// between the caller and a resource) and authz answers with nil or
// common.ErrorForbidden.
package authz

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
)

// Caller is the authenticated identity of a request.
type Caller struct {
	ID   string
	Role models.Role
}

// CallerFromUser builds a Caller from a resolved user record.
func CallerFromUser(u *models.User) Caller {
	return Caller{ID: u.ID, Role: u.Role}
}

// Resource is anything carrying manager and employee references.
type Resource interface {
	ManagerRef() string
	EmployeeRef() string
}

// Relation is the link the caller must have with a resource.
type Relation int

const (
	// ManagerOf: the resource's manager reference is the caller.
	ManagerOf Relation = iota + 1
	// EmployeeOf: the resource's employee reference is the caller.
	EmployeeOf
)

func (r Relation) String() string {
	switch r {
	case ManagerOf:
		return "manager-of"
	case EmployeeOf:
		return "employee-of"
	default:
		return fmt.Sprintf("relation(%d)", int(r))
	}
}

// RelationFor returns the relation a role holds over the feedback it may see:
// managers over what they authored, employees over what they received.
func RelationFor(role models.Role) (Relation, error) {
	switch role {
	case models.RoleManager:
		return ManagerOf, nil
	case models.RoleEmployee:
		return EmployeeOf, nil
	default:
		return 0, fmt.Errorf("%w: unknown role %q", common.ErrorForbidden, role)
	}
}

// RequireRole fails unless the caller has one of roles.
func RequireRole(c Caller, roles ...models.Role) error {
	if slices.Contains(roles, c.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %q not allowed", common.ErrorForbidden, c.Role)
}

// Authorize checks that the caller holds rel over res. A nil resource is
// treated as not owned.
func Authorize(c Caller, res Resource, rel Relation) error {
	if res == nil || c.ID == "" {
		return common.ErrorForbidden
	}

	var ref string
	switch rel {
	case ManagerOf:
		ref = res.ManagerRef()
	case EmployeeOf:
		ref = res.EmployeeRef()
	default:
		return fmt.Errorf("%w: unsupported relation %s", common.ErrorForbidden, rel)
	}

	if ref != c.ID {
		return common.ErrorForbidden
	}
	return nil
}

// AuthorizeByRole combines RelationFor and Authorize: the caller must hold
// the relation its role implies.
func AuthorizeByRole(c Caller, res Resource) error {
	rel, err := RelationFor(c.Role)
	if err != nil {
		return err
	}
	return Authorize(c, res, rel)
}
