package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soulsync/internal/model"
)

func TestEvaluateDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		viewer      Viewer
		authorID    string
		authorName  string
		isAnonymous bool
		want        string
	}{
		{
			name:       "plain content shows author name",
			viewer:     Viewer{ID: "v1", Role: model.RoleUser, Authenticated: true},
			authorID:   "a1",
			authorName: "casey",
			want:       "casey",
		},
		{
			name:        "anonymous content hides author",
			viewer:      Viewer{ID: "v1", Role: model.RoleUser, Authenticated: true},
			authorID:    "a1",
			authorName:  "casey",
			isAnonymous: true,
			want:        AnonymousName,
		},
		{
			name:        "anonymous content hides author from unauthenticated viewers",
			viewer:      Viewer{},
			authorID:    "a1",
			authorName:  "casey",
			isAnonymous: true,
			want:        AnonymousName,
		},
		{
			name:        "author sees themselves on anonymous content",
			viewer:      Viewer{ID: "a1", Role: model.RoleUser, Authenticated: true},
			authorID:    "a1",
			authorName:  "casey",
			isAnonymous: true,
			want:        "casey (you)",
		},
		{
			name:       "author sees themselves on plain content",
			viewer:     Viewer{ID: "a1", Role: model.RoleUser, Authenticated: true},
			authorID:   "a1",
			authorName: "casey",
			want:       "casey (you)",
		},
		{
			name:        "admin always sees the real author",
			viewer:      Viewer{ID: "v1", Role: model.RoleAdmin, Authenticated: true},
			authorID:    "a1",
			authorName:  "casey",
			isAnonymous: true,
			want:        "casey",
		},
		{
			name:        "professional does not get the admin backdoor",
			viewer:      Viewer{ID: "v1", Role: model.RoleProfessional, Authenticated: true},
			authorID:    "a1",
			authorName:  "casey",
			isAnonymous: true,
			want:        AnonymousName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.viewer, tt.authorID, tt.authorName, tt.isAnonymous)
			assert.Equal(t, tt.want, decision.DisplayName)
		})
	}
}

func TestEvaluateAdminBackdoorNeverAnonymous(t *testing.T) {
	// Whatever the anonymity flag says, an admin viewer must see the real
	// author name.
	admin := Viewer{ID: "admin-1", Role: model.RoleAdmin, Authenticated: true}
	for _, anonymous := range []bool{true, false} {
		decision := Evaluate(admin, "a1", "casey", anonymous)
		assert.NotEqual(t, AnonymousName, decision.DisplayName)
		assert.Equal(t, "casey", decision.DisplayName)
	}
}

func TestEvaluateCapabilities(t *testing.T) {
	tests := []struct {
		name        string
		viewer      Viewer
		authorID    string
		canReport   bool
		canModerate bool
	}{
		{
			name:      "authenticated user can report others",
			viewer:    Viewer{ID: "v1", Role: model.RoleUser, Authenticated: true},
			authorID:  "a1",
			canReport: true,
		},
		{
			name:     "unauthenticated viewer cannot report",
			viewer:   Viewer{},
			authorID: "a1",
		},
		{
			name:     "author cannot report their own content",
			viewer:   Viewer{ID: "a1", Role: model.RoleUser, Authenticated: true},
			authorID: "a1",
		},
		{
			name:        "admin moderates instead of reporting",
			viewer:      Viewer{ID: "v1", Role: model.RoleAdmin, Authenticated: true},
			authorID:    "a1",
			canModerate: true,
		},
		{
			name:        "professional can moderate and report",
			viewer:      Viewer{ID: "v1", Role: model.RoleProfessional, Authenticated: true},
			authorID:    "a1",
			canReport:   true,
			canModerate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.viewer, tt.authorID, "casey", false)
			assert.Equal(t, tt.canReport, decision.CanReport, "canReport")
			assert.Equal(t, tt.canModerate, decision.CanModerate, "canModerate")
		})
	}
}

func TestEvaluateModerationIgnoresVerification(t *testing.T) {
	// The role gate is the whole check: an unverified professional still
	// gets the moderate capability.
	professional := Viewer{ID: "p1", Role: model.RoleProfessional, Authenticated: true}
	decision := Evaluate(professional, "a1", "casey", false)
	assert.True(t, decision.CanModerate)
}
