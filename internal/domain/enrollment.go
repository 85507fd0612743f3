package domain

import "time"

// Enrollment is a moderator's membership in the stardust program.
//
// Lifecycle: UNENROLLED -> ACTIVE -> INACTIVE (history retained) or DELETED
// (no history). Deactivating a moderator with zero weekly records removes
// the row entirely; with history it flips Active and stamps the deactivation
// fields. Reactivation clears them again.
type Enrollment struct {
	GuildID         string     `json:"guild_id"`
	UserID          string     `json:"user_id"`
	Active          bool       `json:"active"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	EnrolledByID    string     `json:"enrolled_by_id"`
	DeactivatedAt   *time.Time `json:"deactivated_at,omitempty"`
	DeactivatedByID string     `json:"deactivated_by_id,omitempty"`
}

// ModeratorProfile is the combined read model for one enrolled moderator.
type ModeratorProfile struct {
	Enrollment Enrollment           `json:"enrollment"`
	Tier       TierStatus           `json:"tier"`
	Weekly     []WeeklyPointsRecord `json:"weekly,omitempty"`
}
