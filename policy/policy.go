// Package policy centralizes every visibility and mutation decision for floor
// plans. Handlers resolve a Caller from the request and ask here instead of
// sprinkling role checks inline.
package policy

import "expofloor/models"

// Caller is the resolved identity for the current operation. The zero value
// is the anonymous caller used by the public endpoints.
type Caller struct {
	ID   string
	Role string
}

var Anonymous = Caller{}

func (c Caller) IsAnonymous() bool { return c.ID == "" }
func (c Caller) IsAdmin() bool     { return c.Role == models.RoleAdmin }

// CanCreate: only admins create floor plans.
func CanCreate(c Caller) bool {
	return c.IsAdmin()
}

// VisibleStatuses returns the status filter for collection listings, or nil
// when the caller sees everything. Anonymous callers see published plans only;
// authenticated non-admins additionally see active ones.
func VisibleStatuses(c Caller) []string {
	switch {
	case c.IsAdmin():
		return nil
	case c.IsAnonymous():
		return []string{models.StatusPublished}
	default:
		return []string{models.StatusActive, models.StatusPublished}
	}
}

// CanRead gates the authenticated single-resource read. Ownership deliberately
// grants nothing here: a non-admin owner cannot read their own draft.
func CanRead(c Caller, status string) bool {
	if c.IsAdmin() {
		return true
	}
	return status == models.StatusActive || status == models.StatusPublished
}

// CanReadPublic gates the anonymous single-resource read. Callers that fail it
// are told the plan does not exist, so unpublished plans never leak.
func CanReadPublic(status string) bool {
	return status == models.StatusPublished
}

// CanMutate covers update, delete and status changes: admin or owner.
func CanMutate(c Caller, ownerID string) bool {
	if c.IsAnonymous() {
		return false
	}
	return c.IsAdmin() || c.ID == ownerID
}
