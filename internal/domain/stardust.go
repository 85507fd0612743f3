package domain

import "time"

// Category identifies one tracked activity category.
type Category string

const (
	CategoryModChatMessages    Category = "mod_chat_messages"
	CategoryPublicChatMessages Category = "public_chat_messages"
	CategoryVoiceChatMinutes   Category = "voice_chat_minutes"
	CategoryModActionsTaken    Category = "mod_actions_taken"
	CategoryCasesHandled       Category = "cases_handled"
)

// WeightClass groups categories that share a budget fraction of the
// dynamic maximum.
type WeightClass string

const (
	WeightClassHigh   WeightClass = "HIGH"
	WeightClassMedium WeightClass = "MEDIUM"
	WeightClassLow    WeightClass = "LOW"
)

// RawMetrics holds one moderator's activity counts for a single ISO week.
// Counts are supplied by external collaborators and are never negative.
type RawMetrics struct {
	ModChatMessages    int `json:"mod_chat_messages"`
	PublicChatMessages int `json:"public_chat_messages"`
	VoiceChatMinutes   int `json:"voice_chat_minutes"`
	ModActionsTaken    int `json:"mod_actions_taken"`
	CasesHandled       int `json:"cases_handled"`
}

// Add accumulates another week's counts into m.
func (m *RawMetrics) Add(other RawMetrics) {
	m.ModChatMessages += other.ModChatMessages
	m.PublicChatMessages += other.PublicChatMessages
	m.VoiceChatMinutes += other.VoiceChatMinutes
	m.ModActionsTaken += other.ModActionsTaken
	m.CasesHandled += other.CasesHandled
}

// CategoryPointsDetail is the per-category breakdown of one weekly
// computation. AppliedPoints + WastedPoints always equals RawPoints.
type CategoryPointsDetail struct {
	Category      Category    `json:"category"`
	WeightClass   WeightClass `json:"weight_class"`
	RawAmount     int         `json:"raw_amount"`
	RawPoints     float64     `json:"raw_points"`
	AppliedPoints float64     `json:"applied_points"`
	WastedPoints  float64     `json:"wasted_points"`
	BracketBudget float64     `json:"bracket_budget"`
}

// Computation is the result of one weighted-points calculation.
type Computation struct {
	Details              []CategoryPointsDetail `json:"details"`
	TotalRawPoints       float64                `json:"total_raw_points"`
	TotalFinalizedPoints float64                `json:"total_finalized_points"`
	TotalWastedPoints    float64                `json:"total_wasted_points"`
	DynamicMaxPossible   float64                `json:"dynamic_max_possible"`
}

// Override is the administrative replacement layer on a weekly record.
// Clearing an override keeps the audit fields as a trail of the clear itself.
type Override struct {
	Active          bool                   `json:"active"`
	FinalizedPoints *float64               `json:"finalized_points,omitempty"`
	RawPoints       *float64               `json:"raw_points,omitempty"`
	Details         []CategoryPointsDetail `json:"details,omitempty"`
	Reason          string                 `json:"reason,omitempty"`
	AppliedByID     string                 `json:"applied_by_id,omitempty"`
	AppliedAt       time.Time              `json:"applied_at,omitempty"`
}

// WeeklyPointsRecord is the persisted snapshot for one (guild, user, week,
// year). Recomputation upserts the computed fields and must leave the
// override layer untouched.
type WeeklyPointsRecord struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	Week    int    `json:"week"`
	Year    int    `json:"year"`

	Metrics RawMetrics `json:"metrics"`

	MaxPossiblePoints    float64                `json:"max_possible_points"`
	TotalRawPoints       float64                `json:"total_raw_points"`
	TotalFinalizedPoints float64                `json:"total_finalized_points"`
	TotalWastedPoints    float64                `json:"total_wasted_points"`
	Details              []CategoryPointsDetail `json:"details"`
	TierAfterWeek        int                    `json:"tier_after_week"`

	Override Override `json:"override"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveFinalizedPoints is the single authoritative read of a record's
// payable points. Every report path goes through this so an active override
// is never silently ignored.
func (r *WeeklyPointsRecord) EffectiveFinalizedPoints() float64 {
	if r.Override.Active && r.Override.FinalizedPoints != nil {
		return *r.Override.FinalizedPoints
	}
	return r.TotalFinalizedPoints
}

// TierStatus tracks a moderator's administered tier. The weekly pipeline
// only stamps the LastEvaluated markers; the tier itself changes through an
// explicit admin action (or the opt-in adjustment policy).
type TierStatus struct {
	GuildID           string    `json:"guild_id"`
	UserID            string    `json:"user_id"`
	CurrentTier       int       `json:"current_tier"`
	LastEvaluatedWeek int       `json:"last_evaluated_week"`
	LastEvaluatedYear int       `json:"last_evaluated_year"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// WeekRef identifies one ISO week.
type WeekRef struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// MonthlySummary aggregates one moderator's weekly records across a
// calendar month.
type MonthlySummary struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id,omitempty"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`

	Metrics         RawMetrics `json:"metrics"`
	RawPoints       float64    `json:"raw_points"`
	FinalizedPoints float64    `json:"finalized_points"`
	WastedPoints    float64    `json:"wasted_points"`
	WeeksCounted    int        `json:"weeks_counted"`
}

// Accumulate folds one weekly record into the summary using the effective
// finalized points.
func (s *MonthlySummary) Accumulate(record *WeeklyPointsRecord) {
	s.Metrics.Add(record.Metrics)
	s.RawPoints += record.TotalRawPoints
	finalized := record.EffectiveFinalizedPoints()
	s.FinalizedPoints += finalized
	s.WastedPoints += record.TotalRawPoints - finalized
	s.WeeksCounted++
}

// MonthlyReport is the full output of a monthly aggregation run.
type MonthlyReport struct {
	GuildID      string                     `json:"guild_id"`
	Month        int                        `json:"month"`
	Year         int                        `json:"year"`
	PerModerator map[string]*MonthlySummary `json:"per_moderator"`
	Totals       MonthlySummary             `json:"totals"`
	Persisted    bool                       `json:"persisted"`
}
