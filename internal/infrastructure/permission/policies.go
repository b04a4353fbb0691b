package permission

import (
	"fmt"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/authorization"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// Resources guarded by the route layer.
const (
	ResourceAuthSession  = "auth_session"
	ResourceQuestion     = "question"
	ResourceQuizSession  = "quiz_session"
	ResourceNote         = "note"
	ResourceCache        = "session_cache"
	ResourceReport       = "report"
	ResourceHousekeeping = "housekeeping"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
	ActionRun   = "run"
)

// DefaultPolicies grants users their own quiz data; admins inherit them and may run housekeeping.
func DefaultPolicies() [][]string {
	user := authorization.RoleUser.String()
	admin := authorization.RoleAdmin.String()
	return [][]string{
		{user, ResourceAuthSession, ActionRead},
		{user, ResourceAuthSession, ActionWrite},
		{user, ResourceQuestion, ActionRead},
		{user, ResourceQuizSession, ActionRead},
		{user, ResourceQuizSession, ActionWrite},
		{user, ResourceNote, ActionWrite},
		{user, ResourceCache, ActionRead},
		{user, ResourceCache, ActionWrite},
		{user, ResourceReport, ActionRead},
		{admin, ResourceHousekeeping, ActionRun},
		{admin, ResourceQuestion, ActionWrite},
	}
}

// InitDefaultPolicies adds any missing default policy. Existing rows are kept.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, p := range DefaultPolicies() {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	if err := e.AddRoleInheritance(authorization.RoleAdmin.String(), authorization.RoleUser.String()); err != nil {
		return err
	}

	log.Infow("default permissions initialized", "policies", len(DefaultPolicies()))
	return nil
}
