package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Stardust Moderator Incentive Schema

-- 1. Weekly Points Records
-- One row per moderator per ISO week. Override columns live beside the
-- computed columns; recomputation upserts never touch them.
CREATE TABLE IF NOT EXISTS stardust_weekly_points (
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    week INT NOT NULL,
    year INT NOT NULL,

    mod_chat_messages INT NOT NULL DEFAULT 0,
    public_chat_messages INT NOT NULL DEFAULT 0,
    voice_chat_minutes INT NOT NULL DEFAULT 0,
    mod_actions_taken INT NOT NULL DEFAULT 0,
    cases_handled INT NOT NULL DEFAULT 0,

    max_possible_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_raw_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_finalized_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_wasted_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    details JSONB NOT NULL DEFAULT '[]',
    tier_after_week INT NOT NULL DEFAULT 0,

    override_active BOOLEAN NOT NULL DEFAULT FALSE,
    override_finalized_points DOUBLE PRECISION,
    override_raw_points DOUBLE PRECISION,
    override_details JSONB,
    override_reason TEXT NOT NULL DEFAULT '',
    override_applied_by TEXT NOT NULL DEFAULT '',
    override_applied_at TIMESTAMPTZ,

    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (guild_id, user_id, week, year)
);

CREATE INDEX IF NOT EXISTS idx_weekly_points_guild_week
    ON stardust_weekly_points (guild_id, year, week);

-- 2. Tier Statuses
CREATE TABLE IF NOT EXISTS stardust_tiers (
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    current_tier INT NOT NULL DEFAULT 3,
    last_evaluated_week INT NOT NULL DEFAULT 0,
    last_evaluated_year INT NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (guild_id, user_id)
);

-- 3. Enrollments
CREATE TABLE IF NOT EXISTS stardust_enrollments (
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    enrolled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    enrolled_by TEXT NOT NULL DEFAULT '',
    deactivated_at TIMESTAMPTZ,
    deactivated_by TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (guild_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_enrollments_guild_active
    ON stardust_enrollments (guild_id) WHERE active;

-- 4. Monthly Summaries
-- Persisted only for fully-elapsed months; the current month is always
-- derived fresh from weekly records.
CREATE TABLE IF NOT EXISTS stardust_monthly_summaries (
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    month INT NOT NULL,
    year INT NOT NULL,

    mod_chat_messages INT NOT NULL DEFAULT 0,
    public_chat_messages INT NOT NULL DEFAULT 0,
    voice_chat_minutes INT NOT NULL DEFAULT 0,
    mod_actions_taken INT NOT NULL DEFAULT 0,
    cases_handled INT NOT NULL DEFAULT 0,

    raw_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    finalized_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    wasted_points DOUBLE PRECISION NOT NULL DEFAULT 0,
    weeks_counted INT NOT NULL DEFAULT 0,

    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (guild_id, user_id, month, year)
);

-- 5. Parsed Mod-Log: Moderation Case Actions
CREATE TABLE IF NOT EXISTS stardust_mod_actions (
    message_id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL,
    guild_id TEXT NOT NULL,
    case_id TEXT NOT NULL,
    action TEXT NOT NULL,
    performed_by_username TEXT NOT NULL DEFAULT '',
    moderator_id TEXT NOT NULL DEFAULT '',
    performed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mod_actions_moderator
    ON stardust_mod_actions (guild_id, moderator_id, performed_at);

-- 6. Parsed Mod-Log: Modmail Thread Closures
CREATE TABLE IF NOT EXISTS stardust_modmail_closures (
    message_id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL,
    guild_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    closed_by_id TEXT NOT NULL DEFAULT '',
    closed_by_name TEXT NOT NULL DEFAULT '',
    approved BOOLEAN NOT NULL DEFAULT FALSE,
    closed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_modmail_closures_closer
    ON stardust_modmail_closures (guild_id, closed_by_id, closed_at);
`
