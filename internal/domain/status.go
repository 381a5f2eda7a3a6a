package domain

import "strings"

// Status represents lifecycle states for blog entities
type Status string

const (
	// StatusDraft indicates a feed still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies a feed available to readers
	StatusPublished Status = "published"
)

// Role captures the permission level attached to a user account.
type Role string

const (
	// RoleAdmin is the single permitted writer account.
	RoleAdmin Role = "admin"
	// RoleReader identifies accounts without write access.
	RoleReader Role = "reader"
)

// NormalizeStatus coerces arbitrary status strings into a known representation.
func NormalizeStatus(input string) Status {
	if strings.TrimSpace(input) == "" {
		return StatusDraft
	}
	return Status(strings.ToLower(strings.TrimSpace(input)))
}

// StatusForDraftFlag maps the wire-level draft boolean onto a Status.
func StatusForDraftFlag(draft bool) Status {
	if draft {
		return StatusDraft
	}
	return StatusPublished
}
