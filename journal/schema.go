// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS multiplier_changes (
	id TEXT PRIMARY KEY,
	session TEXT NOT NULL,
	time DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	first_bar INTEGER NOT NULL,
	last_bar INTEGER NOT NULL,
	mode TEXT NOT NULL,
	bars INTEGER NOT NULL,
	old_multiplier INTEGER NOT NULL,
	new_multiplier INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_multiplier_changes_symbol_time ON multiplier_changes(symbol, time);
`
