// Package policy computes what a viewer may see and do with community
// content. It is the single place display identity and capabilities are
// derived; handlers and views must not re-derive them.
package policy

import (
	"soulsync/internal/model"
)

// AnonymousName is shown in place of the author for anonymous content
const AnonymousName = "Anonymous"

// Viewer describes the actor the decision is computed for. A zero Viewer is
// an unauthenticated reader.
type Viewer struct {
	ID            string
	Role          string
	Authenticated bool
}

// Decision is the computed display identity and capability set
type Decision struct {
	DisplayName string
	CanReport   bool
	CanModerate bool
}

// Evaluate derives the decision for one piece of content. Pure function: no
// side effects, no I/O.
//
// Anonymous content hides the author name from everyone except the author
// ("name (you)") and admins, who always see the real name.
func Evaluate(viewer Viewer, authorID, authorName string, isAnonymous bool) Decision {
	isAuthor := viewer.Authenticated && viewer.ID == authorID
	isAdmin := viewer.Authenticated && viewer.Role == model.RoleAdmin

	decision := Decision{
		DisplayName: authorName,
	}

	switch {
	case isAuthor:
		decision.DisplayName = authorName + " (you)"
	case isAnonymous && !isAdmin:
		decision.DisplayName = AnonymousName
	}

	// Reporting requires authentication; authors cannot report their own
	// content, and admins moderate rather than report.
	decision.CanReport = viewer.Authenticated && !isAuthor && !isAdmin

	// Role gate only: a professional's verification status is not checked.
	decision.CanModerate = viewer.Authenticated &&
		(viewer.Role == model.RoleAdmin || viewer.Role == model.RoleProfessional)

	return decision
}
