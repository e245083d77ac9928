// ABOUTME: SQLite database schema for the feed service
// ABOUTME: Creates posts, users, and comments tables with indexes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Posts table (published images with embeddings)
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    author_id TEXT NOT NULL,
    title TEXT,
    description TEXT,
    image_url TEXT,
    ai_generated INTEGER DEFAULT 0,
    ai_confidence INTEGER DEFAULT 0,
    tags TEXT,
    embedding BLOB,
    likes_count INTEGER DEFAULT 0,
    liked_by TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME
);

-- Users table (profiles with interest embeddings)
CREATE TABLE IF NOT EXISTS users (
    uid TEXT PRIMARY KEY,
    email TEXT,
    interests TEXT,
    embedding BLOB,
    avatar_url TEXT,
    subscriptions TEXT,
    followers TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Comments table
CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    text TEXT NOT NULL,
    liked_by TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
