package database

import (
	"database/sql"
	"fmt"
	"strings"

	"mediacatalog/logger"
	"mediacatalog/utils"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// DB is the process-wide database handle, opened once by Initialize.
var DB *sql.DB

var dbType string

// Initialize opens the database and creates the schema.
// dbType is "sqlite" or "mysql"; dsn is the SQLite file path or MySQL DSN.
func Initialize(t, dsn string) error {
	if t == "" {
		t = "sqlite"
	}
	if dsn == "" && t == "sqlite" {
		dsn = "./catalog.db"
	}
	dbType = t

	var err error
	DB, err = sql.Open(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite ships with foreign keys off. The pool is capped at one
	// connection: in-memory databases are per-connection, and file
	// databases only allow a single writer anyway.
	if dbType == "sqlite" {
		DB.SetMaxOpenConns(1)
		if _, err := DB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := seedDefaultGenres(); err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}

	logger.Info("Database initialized successfully (%s)", dbType)
	return nil
}

// Close releases the database handle.
func Close() {
	if DB != nil {
		DB.Close()
	}
}

// Type returns the configured database driver name.
func Type() string {
	return dbType
}

func createTables() error {
	baseTables := []string{
		`CREATE TABLE IF NOT EXISTS media_titles (
			id VARCHAR(50) PRIMARY KEY,
			title_name VARCHAR(150) NOT NULL,
			title_type VARCHAR(20) NOT NULL,
			release_year INT,
			synopsis VARCHAR(1000),
			average_rating DOUBLE PRECISION,
			created_at VARCHAR(50) NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS movie_genres (
			id VARCHAR(50) PRIMARY KEY,
			genre_name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS media_title_genres (
			media_title_id VARCHAR(50) NOT NULL,
			movie_genre_id VARCHAR(50) NOT NULL,
			PRIMARY KEY (media_title_id, movie_genre_id),
			FOREIGN KEY (media_title_id) REFERENCES media_titles(id) ON DELETE CASCADE,
			FOREIGN KEY (movie_genre_id) REFERENCES movie_genres(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS attachments (
			id VARCHAR(50) PRIMARY KEY,
			media_title_id VARCHAR(50) NOT NULL,
			kind VARCHAR(20) NOT NULL,
			storage_key VARCHAR(500) UNIQUE NOT NULL,
			blob_url VARCHAR(500),
			integrity_tag VARCHAR(100),
			content_type VARCHAR(50),
			size_bytes BIGINT,
			uploaded_at VARCHAR(50) NOT NULL DEFAULT '',
			uploaded_by VARCHAR(50),
			FOREIGN KEY (media_title_id) REFERENCES media_titles(id) ON DELETE CASCADE
		)`,
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_titles_created ON media_titles(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_titles_type ON media_titles(title_type)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_title ON attachments(media_title_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_kind ON attachments(media_title_id, kind)`,
	}

	for _, ddl := range baseTables {
		if dbType == "mysql" {
			ddl += " CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci"
		}
		if _, err := DB.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	for _, ddl := range indexes {
		if dbType == "mysql" {
			// MySQL has no CREATE INDEX IF NOT EXISTS; tolerate duplicates.
			ddl = strings.Replace(ddl, "IF NOT EXISTS ", "", 1)
			if _, err := DB.Exec(ddl); err != nil && !strings.Contains(err.Error(), "Duplicate") {
				return fmt.Errorf("failed to create index: %w", err)
			}
			continue
		}
		if _, err := DB.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	// Backstop for the single-poster invariant. The attachment service also
	// serializes poster mutations per title; MySQL lacks partial indexes so
	// there the mutex is the only guard.
	if dbType == "sqlite" {
		ddl := `CREATE UNIQUE INDEX IF NOT EXISTS idx_attachments_single_poster
			ON attachments(media_title_id) WHERE kind = 'POSTER'`
		if _, err := DB.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create poster index: %w", err)
		}
	}

	return nil
}

// seedDefaultGenres inserts a starter genre set into an empty catalog.
func seedDefaultGenres() error {
	var count int
	if err := DB.QueryRow("SELECT COUNT(*) FROM movie_genres").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range []string{"Action", "Comedy", "Drama", "Horror", "Science Fiction"} {
		id, err := utils.GenerateID("genre")
		if err != nil {
			return err
		}
		if _, err := DB.Exec("INSERT INTO movie_genres (id, genre_name) VALUES (?, ?)", id, name); err != nil {
			return err
		}
	}

	logger.Info("Seeded default genres")
	return nil
}
