package sqlite

// Schema is the embedded SQLite schema, applied on open. All statements
// are idempotent so reopening an existing database is safe.
const Schema = `
CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, updated_at);

CREATE TABLE IF NOT EXISTS messages (
    id              TEXT PRIMARY KEY,
    conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    user_id         TEXT NOT NULL,
    role            TEXT NOT NULL,
    content         TEXT NOT NULL,
    created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at);

CREATE TABLE IF NOT EXISTS journal_entries (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    mood_tag   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at);

CREATE TABLE IF NOT EXISTS check_ins (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    date        TEXT NOT NULL,
    mood_rating INTEGER NOT NULL,
    note        TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_check_ins_user ON check_ins(user_id, date);

CREATE TABLE IF NOT EXISTS mood_analyses (
    id             TEXT PRIMARY KEY,
    user_id        TEXT NOT NULL,
    source         TEXT NOT NULL,
    source_id      TEXT NOT NULL DEFAULT '',
    primary_mood   TEXT NOT NULL,
    secondary_mood TEXT NOT NULL DEFAULT '',
    intensity      INTEGER NOT NULL,
    confidence     REAL NOT NULL,
    reasoning      TEXT NOT NULL DEFAULT '',
    key_emotions   TEXT NOT NULL DEFAULT '[]',
    analyzed_text  TEXT NOT NULL DEFAULT '',
    day            TEXT NOT NULL,
    created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_user_day ON mood_analyses(user_id, day);

CREATE TABLE IF NOT EXISTS daily_summaries (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    date               TEXT NOT NULL,
    primary_mood       TEXT NOT NULL,
    secondary_mood     TEXT NOT NULL DEFAULT '',
    average_intensity  REAL NOT NULL,
    overall_confidence REAL NOT NULL,
    reasoning          TEXT NOT NULL DEFAULT '',
    key_emotions       TEXT NOT NULL DEFAULT '[]',
    analysis_count     INTEGER NOT NULL,
    updated_at         TIMESTAMP NOT NULL,
    UNIQUE(user_id, date)
);

CREATE TABLE IF NOT EXISTS weekly_plans (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    target_area TEXT NOT NULL DEFAULT '',
    insights    TEXT NOT NULL DEFAULT '[]',
    week_start  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_plans_user ON weekly_plans(user_id, created_at);

CREATE TABLE IF NOT EXISTS plan_exercises (
    id               TEXT PRIMARY KEY,
    plan_id          TEXT NOT NULL REFERENCES weekly_plans(id) ON DELETE CASCADE,
    user_id          TEXT NOT NULL,
    title            TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    type             TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL,
    difficulty       TEXT NOT NULL,
    day_of_week      INTEGER NOT NULL DEFAULT 0,
    completed        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_exercises_plan ON plan_exercises(plan_id);
`
