package service

import (
	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/web/acl"
)

// guard re-checks the capability table inside mutating operations. Route
// middleware already gates access, but the services are reachable without it
// (jobs, future APIs), so authorization is enforced here too.
func guard(requester *model.User, cap acl.Capability) error {
	if requester == nil {
		return ErrForbidden
	}
	// The dashboard toggle only affects a read capability; mutating checks
	// use the static table.
	if !acl.NewGate(true).Allows(requester.Role, cap) {
		return ErrForbidden
	}
	return nil
}
