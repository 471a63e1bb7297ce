package storage

const schema = `
-- The whole application state is persisted as one JSON document;
-- the CHECK keeps the table single-row.
CREATE TABLE IF NOT EXISTS app_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    document TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`
