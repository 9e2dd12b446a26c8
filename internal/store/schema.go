package store

// schema defines the ledger tables. Uniqueness lives here: the application
// surfaces constraint violations as conflicts instead of overwriting.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    name_owner              TEXT PRIMARY KEY,
    account_type            TEXT NOT NULL CHECK (account_type IN ('debit', 'credit')),
    active_status           INTEGER NOT NULL DEFAULT 1,
    total_future_cents      INTEGER NOT NULL DEFAULT 0,
    total_outstanding_cents INTEGER NOT NULL DEFAULT 0,
    total_cleared_cents     INTEGER NOT NULL DEFAULT 0,
    totals_stale            INTEGER NOT NULL DEFAULT 1,
    date_added              TEXT NOT NULL,
    date_updated            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    guid               TEXT PRIMARY KEY,
    account_name_owner TEXT NOT NULL REFERENCES accounts(name_owner),
    account_type       TEXT NOT NULL,
    transaction_date   TEXT NOT NULL,
    description        TEXT NOT NULL DEFAULT '',
    category           TEXT NOT NULL DEFAULT '',
    amount_cents       INTEGER NOT NULL,
    transaction_state  TEXT NOT NULL CHECK (transaction_state IN ('future', 'outstanding', 'cleared')),
    reoccurring        INTEGER NOT NULL DEFAULT 0,
    notes              TEXT NOT NULL DEFAULT '',
    date_added         TEXT NOT NULL,
    date_updated       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account_state
    ON transactions(account_name_owner, transaction_state);

CREATE INDEX IF NOT EXISTS idx_transactions_category
    ON transactions(category);

CREATE INDEX IF NOT EXISTS idx_transactions_description
    ON transactions(description);

CREATE TABLE IF NOT EXISTS categories (
    name          TEXT PRIMARY KEY,
    active_status INTEGER NOT NULL DEFAULT 1,
    count         INTEGER NOT NULL DEFAULT 0,
    date_added    TEXT NOT NULL,
    date_updated  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS descriptions (
    name          TEXT PRIMARY KEY,
    active_status INTEGER NOT NULL DEFAULT 1,
    count         INTEGER NOT NULL DEFAULT 0,
    date_added    TEXT NOT NULL,
    date_updated  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    payment_id         INTEGER PRIMARY KEY AUTOINCREMENT,
    account_name_owner TEXT NOT NULL,
    amount_cents       INTEGER NOT NULL,
    transaction_date   TEXT NOT NULL,
    guid_source        TEXT NOT NULL REFERENCES transactions(guid),
    guid_destination   TEXT NOT NULL REFERENCES transactions(guid),
    date_added         TEXT NOT NULL,
    date_updated       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pending_transactions (
    pending_transaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_name_owner     TEXT NOT NULL,
    transaction_date       TEXT NOT NULL,
    description            TEXT NOT NULL DEFAULT '',
    amount_cents           INTEGER NOT NULL,
    review_status          TEXT NOT NULL DEFAULT 'pending',
    date_added             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS parameters (
    name          TEXT PRIMARY KEY,
    value         TEXT NOT NULL,
    active_status INTEGER NOT NULL DEFAULT 1,
    date_added    TEXT NOT NULL,
    date_updated  TEXT NOT NULL
);
`
