// Package acl holds the role/capability table for the panel. Every route
// group and every mutating service operation consults this table; screens
// never derive their own role checks.
package acl

import (
	"github.com/ruvumera/choir-panel/database/model"
)

// Capability names one gated panel feature.
type Capability string

const (
	CapDashboard    Capability = "dashboard"
	CapSongsRead    Capability = "songs:read"
	CapSongsWrite   Capability = "songs:write"
	CapMembersRead  Capability = "members:read"
	CapMembersWrite Capability = "members:write"
	CapUsersAdmin   Capability = "users:admin"
	CapSettings     Capability = "settings"
	CapChat         Capability = "chat"
	CapProfile      Capability = "profile"
)

// AllCapabilities lists every capability, for grid checks and admin grants.
var AllCapabilities = []Capability{
	CapDashboard,
	CapSongsRead,
	CapSongsWrite,
	CapMembersRead,
	CapMembersWrite,
	CapUsersAdmin,
	CapSettings,
	CapChat,
	CapProfile,
}

var editorCaps = map[Capability]bool{
	CapSongsRead:    true,
	CapSongsWrite:   true,
	CapMembersRead:  true,
	CapMembersWrite: true,
	CapChat:         true,
	CapProfile:      true,
}

var userCaps = map[Capability]bool{
	CapDashboard: true,
	CapSongsRead: true,
	CapChat:      true,
	CapProfile:   true,
}

// Gate answers allow/deny for a role and capability. Whether EDITOR sees the
// dashboard is a runtime setting, not a fixed rule.
type Gate struct {
	editorDashboard bool
}

// NewGate builds a gate. editorDashboard grants CapDashboard to EDITOR.
func NewGate(editorDashboard bool) *Gate {
	return &Gate{editorDashboard: editorDashboard}
}

// Allows reports whether role holds cap. Unknown roles hold nothing.
func (g *Gate) Allows(role model.Role, cap Capability) bool {
	switch role {
	case model.RoleAdmin:
		return true
	case model.RoleEditor:
		if cap == CapDashboard {
			return g.editorDashboard
		}
		return editorCaps[cap]
	case model.RoleUser:
		return userCaps[cap]
	}
	return false
}
