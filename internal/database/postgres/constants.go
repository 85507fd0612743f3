package postgres

// ============================================================================
// Weekly Points SQL
// ============================================================================

// SQLUpsertWeeklyRecord writes one computed record. On conflict only the
// computed columns are replaced; the override columns are deliberately
// absent from the UPDATE so a recomputation can never clobber a manual
// override.
const SQLUpsertWeeklyRecord = `
INSERT INTO stardust_weekly_points (
    guild_id, user_id, week, year,
    mod_chat_messages, public_chat_messages, voice_chat_minutes,
    mod_actions_taken, cases_handled,
    max_possible_points, total_raw_points, total_finalized_points,
    total_wasted_points, details, tier_after_week
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (guild_id, user_id, week, year) DO UPDATE SET
    mod_chat_messages = EXCLUDED.mod_chat_messages,
    public_chat_messages = EXCLUDED.public_chat_messages,
    voice_chat_minutes = EXCLUDED.voice_chat_minutes,
    mod_actions_taken = EXCLUDED.mod_actions_taken,
    cases_handled = EXCLUDED.cases_handled,
    max_possible_points = EXCLUDED.max_possible_points,
    total_raw_points = EXCLUDED.total_raw_points,
    total_finalized_points = EXCLUDED.total_finalized_points,
    total_wasted_points = EXCLUDED.total_wasted_points,
    details = EXCLUDED.details,
    tier_after_week = EXCLUDED.tier_after_week,
    updated_at = NOW()
RETURNING ` + weeklyColumns

const weeklyColumns = `
    guild_id, user_id, week, year,
    mod_chat_messages, public_chat_messages, voice_chat_minutes,
    mod_actions_taken, cases_handled,
    max_possible_points, total_raw_points, total_finalized_points,
    total_wasted_points, details, tier_after_week,
    override_active, override_finalized_points, override_raw_points,
    override_details, override_reason, override_applied_by, override_applied_at,
    created_at, updated_at`

const SQLGetWeeklyRecord = `
SELECT ` + weeklyColumns + `
FROM stardust_weekly_points
WHERE guild_id = $1 AND user_id = $2 AND week = $3 AND year = $4`

const SQLListWeeklyByWeek = `
SELECT ` + weeklyColumns + `
FROM stardust_weekly_points
WHERE guild_id = $1 AND week = $2 AND year = $3
ORDER BY total_finalized_points DESC, user_id`

const SQLListWeeklyByWeeks = `
SELECT ` + weeklyColumns + `
FROM stardust_weekly_points p
JOIN unnest($3::int[], $4::int[]) AS ref(week, year)
    ON p.week = ref.week AND p.year = ref.year
WHERE p.guild_id = $1 AND p.user_id = $2
ORDER BY p.year, p.week`

const SQLListAllWeeklyByWeeks = `
SELECT ` + weeklyColumns + `
FROM stardust_weekly_points p
JOIN unnest($2::int[], $3::int[]) AS ref(week, year)
    ON p.week = ref.week AND p.year = ref.year
WHERE p.guild_id = $1
ORDER BY p.year, p.week, p.user_id`

const SQLCountWeeklyByWeek = `
SELECT COUNT(*) FROM stardust_weekly_points
WHERE guild_id = $1 AND week = $2 AND year = $3`

const SQLCountWeeklyByUser = `
SELECT COUNT(*) FROM stardust_weekly_points
WHERE guild_id = $1 AND user_id = $2`

const SQLSetWeeklyOverride = `
UPDATE stardust_weekly_points SET
    override_active = $5,
    override_finalized_points = $6,
    override_raw_points = $7,
    override_details = $8,
    override_reason = $9,
    override_applied_by = $10,
    override_applied_at = $11,
    updated_at = NOW()
WHERE guild_id = $1 AND user_id = $2 AND week = $3 AND year = $4
RETURNING ` + weeklyColumns

const SQLDeleteWeeklyByWeek = `
DELETE FROM stardust_weekly_points
WHERE guild_id = $1 AND week = $2 AND year = $3`

// ============================================================================
// Tier Status SQL
// ============================================================================

const tierColumns = `guild_id, user_id, current_tier, last_evaluated_week, last_evaluated_year, updated_at`

const SQLGetTierStatus = `
SELECT ` + tierColumns + `
FROM stardust_tiers
WHERE guild_id = $1 AND user_id = $2`

const SQLSetTier = `
INSERT INTO stardust_tiers (guild_id, user_id, current_tier)
VALUES ($1, $2, $3)
ON CONFLICT (guild_id, user_id) DO UPDATE SET
    current_tier = EXCLUDED.current_tier,
    updated_at = NOW()`

// SQLStampTierEvaluated creates the row at the default tier when absent; an
// existing row keeps its tier and only the evaluation markers move.
const SQLStampTierEvaluated = `
INSERT INTO stardust_tiers (guild_id, user_id, current_tier, last_evaluated_week, last_evaluated_year)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (guild_id, user_id) DO UPDATE SET
    last_evaluated_week = EXCLUDED.last_evaluated_week,
    last_evaluated_year = EXCLUDED.last_evaluated_year,
    updated_at = NOW()
RETURNING ` + tierColumns

const SQLListTierStatuses = `
SELECT ` + tierColumns + `
FROM stardust_tiers
WHERE guild_id = $1
ORDER BY current_tier DESC, user_id`

// ============================================================================
// Enrollment SQL
// ============================================================================

const enrollmentColumns = `guild_id, user_id, active, enrolled_at, enrolled_by, deactivated_at, deactivated_by`

const SQLGetEnrollment = `
SELECT ` + enrollmentColumns + `
FROM stardust_enrollments
WHERE guild_id = $1 AND user_id = $2`

const SQLUpsertEnrollment = `
INSERT INTO stardust_enrollments (guild_id, user_id, active, enrolled_at, enrolled_by, deactivated_at, deactivated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (guild_id, user_id) DO UPDATE SET
    active = EXCLUDED.active,
    enrolled_at = EXCLUDED.enrolled_at,
    enrolled_by = EXCLUDED.enrolled_by,
    deactivated_at = EXCLUDED.deactivated_at,
    deactivated_by = EXCLUDED.deactivated_by`

const SQLDeleteEnrollment = `
DELETE FROM stardust_enrollments
WHERE guild_id = $1 AND user_id = $2`

const SQLListActiveEnrollments = `
SELECT ` + enrollmentColumns + `
FROM stardust_enrollments
WHERE guild_id = $1 AND active
ORDER BY enrolled_at`

const SQLListEnrollments = `
SELECT ` + enrollmentColumns + `
FROM stardust_enrollments
WHERE guild_id = $1
ORDER BY enrolled_at`

// ============================================================================
// Monthly Summary SQL
// ============================================================================

const SQLListMonthlyByMonth = `
SELECT guild_id, user_id, month, year,
    mod_chat_messages, public_chat_messages, voice_chat_minutes,
    mod_actions_taken, cases_handled,
    raw_points, finalized_points, wasted_points, weeks_counted
FROM stardust_monthly_summaries
WHERE guild_id = $1 AND month = $2 AND year = $3
ORDER BY finalized_points DESC, user_id`

const SQLUpsertMonthlySummary = `
INSERT INTO stardust_monthly_summaries (
    guild_id, user_id, month, year,
    mod_chat_messages, public_chat_messages, voice_chat_minutes,
    mod_actions_taken, cases_handled,
    raw_points, finalized_points, wasted_points, weeks_counted
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (guild_id, user_id, month, year) DO UPDATE SET
    mod_chat_messages = EXCLUDED.mod_chat_messages,
    public_chat_messages = EXCLUDED.public_chat_messages,
    voice_chat_minutes = EXCLUDED.voice_chat_minutes,
    mod_actions_taken = EXCLUDED.mod_actions_taken,
    cases_handled = EXCLUDED.cases_handled,
    raw_points = EXCLUDED.raw_points,
    finalized_points = EXCLUDED.finalized_points,
    wasted_points = EXCLUDED.wasted_points,
    weeks_counted = EXCLUDED.weeks_counted,
    updated_at = NOW()`

// ============================================================================
// Mod-log SQL
// ============================================================================

const SQLUpsertModAction = `
INSERT INTO stardust_mod_actions (
    message_id, channel_id, guild_id, case_id, action,
    performed_by_username, moderator_id, performed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (message_id) DO UPDATE SET
    case_id = EXCLUDED.case_id,
    action = EXCLUDED.action,
    performed_by_username = EXCLUDED.performed_by_username,
    moderator_id = EXCLUDED.moderator_id,
    performed_at = EXCLUDED.performed_at`

const SQLModActionExists = `
SELECT EXISTS (SELECT 1 FROM stardust_mod_actions WHERE message_id = $1)`

const SQLLatestModAction = `
SELECT message_id, channel_id, guild_id, case_id, action,
    performed_by_username, moderator_id, performed_at
FROM stardust_mod_actions
WHERE guild_id = $1
ORDER BY performed_at DESC
LIMIT 1`

// SQLCountModActions counts only the scored action types; UNBAN and UPDATE
// entries are stored but excluded here.
const SQLCountModActions = `
SELECT COUNT(*) FROM stardust_mod_actions
WHERE guild_id = $1 AND moderator_id = $2
    AND performed_at >= $3 AND performed_at < $4
    AND action = ANY($5::text[])`

const SQLUpsertModmailClosure = `
INSERT INTO stardust_modmail_closures (
    message_id, channel_id, guild_id, user_id,
    closed_by_id, closed_by_name, approved, closed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (message_id) DO UPDATE SET
    user_id = EXCLUDED.user_id,
    closed_by_id = EXCLUDED.closed_by_id,
    closed_by_name = EXCLUDED.closed_by_name,
    approved = EXCLUDED.approved,
    closed_at = EXCLUDED.closed_at`

const SQLModmailClosureExists = `
SELECT EXISTS (SELECT 1 FROM stardust_modmail_closures WHERE message_id = $1)`

const SQLLatestModmailClosure = `
SELECT message_id, channel_id, guild_id, user_id,
    closed_by_id, closed_by_name, approved, closed_at
FROM stardust_modmail_closures
WHERE guild_id = $1
ORDER BY closed_at DESC
LIMIT 1`

const SQLCountModmailClosures = `
SELECT COUNT(*) FROM stardust_modmail_closures
WHERE guild_id = $1 AND closed_by_id = $2 AND approved
    AND closed_at >= $3 AND closed_at < $4`
