package domain

import internaldomain "github.com/goliatone/go-blog/internal/domain"

// Status represents lifecycle states for blog entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a feed still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a feed available to readers.
	StatusPublished = internaldomain.StatusPublished
)

// Role captures the permission level attached to a user account.
type Role = internaldomain.Role

const (
	RoleAdmin  = internaldomain.RoleAdmin
	RoleReader = internaldomain.RoleReader
)
