// Package domain contains entities without logic, just meta-data
package domain

type (
	// Identity is a caller-supplied unique string naming a participant.
	Identity string
	RoomName string
)

// Role is the capability a participant asks for before connecting.
type Role string

const (
	RolePublisher Role = "publisher"
	RoleViewer    Role = "viewer"
)

// CanPublish reports whether the role grants publish capability.
func (r Role) CanPublish() bool {
	return r == RolePublisher
}
