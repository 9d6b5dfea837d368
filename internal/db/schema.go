package db

// SchemaSQL is the complete schema for fresh hive installs.
//
// This is the single source of truth for the database layout. All tests load
// it via GetSchemaSQL(), so a repository referencing a column that does not
// exist here fails immediately with "no such column" at test time.
//
// Timestamps are stored as fixed-width UTC text
// ("2006-01-02 15:04:05.000000000+00:00") written by the sqlite adapters,
// which makes lexical comparison equal to chronological comparison. That
// property is what the unread-count and caught-up queries rely on.
const SchemaSQL = `
-- Identifier sequence counters. Incremented with an atomic upsert inside
-- the same transaction as the insert that consumes the value.
CREATE TABLE IF NOT EXISTS id_sequences (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL DEFAULT 0
);

-- Epics (external grouping of tasks, referenced by epic-scoped discussions)
CREATE TABLE IF NOT EXISTS epics (
	id TEXT PRIMARY KEY,
	title TEXT,
	created_at TEXT NOT NULL
);

-- Tasks (units of work; carry the epic linkage used for scope resolution)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	epic_id TEXT,
	title TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (epic_id) REFERENCES epics(id)
);

-- Missions (the registry of participants: who is active, their role, and
-- the task they claimed). An agent has at most one active mission.
CREATE TABLE IF NOT EXISTS missions (
	id TEXT PRIMARY KEY,
	agent TEXT NOT NULL,
	role TEXT NOT NULL,
	task_id TEXT,
	started_at TEXT NOT NULL,
	ended_at TEXT,
	FOREIGN KEY (task_id) REFERENCES tasks(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_missions_active_agent
	ON missions(agent) WHERE ended_at IS NULL;

-- Conversations. A conversation is either explicitly two-party (direct) or
-- dynamically scoped (group), never both; the CHECK enforces the exclusion
-- at the storage layer.
CREATE TABLE IF NOT EXISTS conversations (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL CHECK(kind IN ('direct', 'group')),
	subject TEXT NOT NULL,
	state TEXT NOT NULL CHECK(state IN ('open', 'closed')) DEFAULT 'open',
	participant_a TEXT,
	participant_b TEXT,
	scope TEXT,
	task_id TEXT,
	epic_id TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	closed_at TEXT,
	CHECK (
		(kind = 'direct' AND participant_a IS NOT NULL AND participant_b IS NOT NULL AND scope IS NULL)
		OR (kind = 'group' AND participant_a IS NULL AND participant_b IS NULL AND scope IS NOT NULL)
	)
);

-- At most one open direct conversation per unordered pair. Participants are
-- stored in normalized order, so the insert race between (a,b) and (b,a)
-- lands on this index and the loser retries against the winner's row.
CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_open_pair
	ON conversations(participant_a, participant_b)
	WHERE kind = 'direct' AND state = 'open';

-- Messages. Append-only: no update or delete path exists.
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	sender TEXT NOT NULL,
	subject TEXT,
	body TEXT NOT NULL,
	priority TEXT NOT NULL CHECK(priority IN ('critical', 'high', 'medium', 'low')) DEFAULT 'medium',
	parent_id TEXT,
	thread_root_id TEXT,
	task_id TEXT,
	epic_id TEXT,
	artifact TEXT,
	created_at TEXT NOT NULL,
	expires_at TEXT,
	FOREIGN KEY (conversation_id) REFERENCES conversations(id),
	FOREIGN KEY (parent_id) REFERENCES messages(id),
	FOREIGN KEY (thread_root_id) REFERENCES messages(id)
);

-- View bookmarks: one row per (conversation, participant), upserted on read.
CREATE TABLE IF NOT EXISTS conversation_views (
	conversation_id TEXT NOT NULL,
	participant TEXT NOT NULL,
	last_viewed_at TEXT NOT NULL,
	PRIMARY KEY (conversation_id, participant),
	FOREIGN KEY (conversation_id) REFERENCES conversations(id)
);

CREATE INDEX IF NOT EXISTS idx_missions_role ON missions(role) WHERE ended_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_tasks_epic ON tasks(epic_id);
CREATE INDEX IF NOT EXISTS idx_conversations_kind_state ON conversations(kind, state);
CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at);
CREATE INDEX IF NOT EXISTS idx_messages_thread_root ON messages(thread_root_id);
CREATE INDEX IF NOT EXISTS idx_views_participant ON conversation_views(participant);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
