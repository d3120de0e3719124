package postgres

// schema is applied by Setup. Every statement is idempotent so setup can be
// run again on an existing database.
//
// Timestamps are stored without time zone and always hold UTC, the column
// defaults convert the server clock so that backdated and store-stamped
// postings compare on the same scale.
const schema = `
CREATE TABLE IF NOT EXISTS ledgers (
    id SERIAL PRIMARY KEY,
    code VARCHAR(10) NOT NULL UNIQUE,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    sort VARCHAR(10) NOT NULL,
    kind VARCHAR(20) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
    updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
);
CREATE TABLE IF NOT EXISTS proceedings (
    id SERIAL PRIMARY KEY,
    cr_from INTEGER NOT NULL REFERENCES ledgers(id),
    db_to INTEGER NOT NULL REFERENCES ledgers(id),
    amount NUMERIC(20,4) NOT NULL CHECK (amount > 0),
    narration TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc'),
    updated_at TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
);
CREATE INDEX IF NOT EXISTS proceedings_created_at_idx ON proceedings (created_at);
`
