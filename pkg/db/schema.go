package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Articles: one row per public-consultation entry, keyed by the
-- content-hash identifier so re-scrapes are idempotent.
CREATE TABLE IF NOT EXISTS articles (
    article_id INTEGER PRIMARY KEY AUTOINCREMENT,
    identifier TEXT NOT NULL UNIQUE,
    article_type TEXT NOT NULL,
    title TEXT NOT NULL,
    published_at TEXT,            -- YYYY-MM-DD, NULL when unresolved
    feedback_days INTEGER,        -- NULL when unresolved
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_articles_type ON articles(article_type);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);

-- Documents: the act plus optional annex, ordered by position.
CREATE TABLE IF NOT EXISTS documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    doc_type TEXT,
    url TEXT NOT NULL,
    FOREIGN KEY (article_id) REFERENCES articles(article_id) ON DELETE CASCADE,
    UNIQUE(article_id, position)
);

CREATE INDEX IF NOT EXISTS idx_documents_article ON documents(article_id);

-- Contacts: partial email/tel/fax/addr entries per article.
CREATE TABLE IF NOT EXISTS contacts (
    contact_id INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id INTEGER NOT NULL,
    field TEXT NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (article_id) REFERENCES articles(article_id) ON DELETE CASCADE,
    UNIQUE(article_id, field)
);

CREATE INDEX IF NOT EXISTS idx_contacts_article ON contacts(article_id);

-- Scrape runs: one row per fetched listing page.
CREATE TABLE IF NOT EXISTS scrape_runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_url TEXT NOT NULL,
    page_title TEXT,
    language TEXT,
    language_confidence REAL,
    row_groups INTEGER DEFAULT 0,
    valid_articles INTEGER DEFAULT 0,
    invalid_articles INTEGER DEFAULT 0,
    failed_row_groups INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
