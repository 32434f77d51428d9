package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ytinsight/internal/models"
)

// SQLiteStore is a single-file alternative to the Postgres store with the
// same methods. Timestamps are stored as unix microseconds.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer
	s := &SQLiteStore{db: conn}
	if err := s.initSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS keyword_analyses (
			id                   TEXT PRIMARY KEY,
			keyword              TEXT NOT NULL UNIQUE,
			search_volume        INTEGER NOT NULL CHECK (search_volume >= 0),
			competition          REAL NOT NULL CHECK (competition >= 0 AND competition <= 1),
			recommendation_score REAL NOT NULL CHECK (recommendation_score >= 0 AND recommendation_score <= 1),
			related_keywords     TEXT NOT NULL DEFAULT '[]',
			analyzed_at          INTEGER NOT NULL,
			expires_at           INTEGER NOT NULL,
			CHECK (expires_at > analyzed_at)
		);
		CREATE INDEX IF NOT EXISTS ix_keyword_analyses_expires_at ON keyword_analyses (expires_at);
		CREATE TABLE IF NOT EXISTS analysis_lookups (
			keyword      TEXT NOT NULL,
			outcome      TEXT NOT NULL,
			count        INTEGER NOT NULL DEFAULT 0,
			last_seen_at INTEGER NOT NULL,
			PRIMARY KEY (keyword, outcome)
		);
	`)
	return err
}

// GetKeywordAnalysis returns the stored analysis for keyword, expired or not.
func (s *SQLiteStore) GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error) {
	var (
		a                   models.KeywordAnalysis
		id, related         string
		analyzed, expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, keyword, search_volume, competition, recommendation_score,
		       related_keywords, analyzed_at, expires_at
		FROM keyword_analyses
		WHERE keyword = ?
	`, keyword).Scan(&id, &a.Keyword, &a.SearchVolume, &a.Competition, &a.RecommendationScore,
		&related, &analyzed, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("decode id: %w", err)
	}
	if err := json.Unmarshal([]byte(related), &a.RelatedKeywords); err != nil {
		return nil, fmt.Errorf("decode related keywords: %w", err)
	}
	a.AnalyzedAt = time.UnixMicro(analyzed).UTC()
	a.ExpiresAt = time.UnixMicro(expiresAt).UTC()
	return &a, nil
}

// UpsertKeywordAnalysis inserts or overwrites the analysis for a.Keyword.
// The row id is kept across overwrites and written back into a.ID.
func (s *SQLiteStore) UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error {
	related, err := json.Marshal(relatedOrEmpty(a.RelatedKeywords))
	if err != nil {
		return fmt.Errorf("encode related keywords: %w", err)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO keyword_analyses (id, keyword, search_volume, competition, recommendation_score,
		                              related_keywords, analyzed_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (keyword) DO UPDATE
		SET search_volume = excluded.search_volume,
		    competition = excluded.competition,
		    recommendation_score = excluded.recommendation_score,
		    related_keywords = excluded.related_keywords,
		    analyzed_at = excluded.analyzed_at,
		    expires_at = excluded.expires_at
		RETURNING id
	`, a.ID.String(), a.Keyword, a.SearchVolume, a.Competition, a.RecommendationScore,
		string(related), a.AnalyzedAt.UnixMicro(), a.ExpiresAt.UnixMicro(),
	).Scan(&id)
	if err != nil {
		return err
	}
	a.ID, err = uuid.Parse(id)
	return err
}

// DeleteExpiredKeywordAnalyses removes every analysis that expired at or before now.
func (s *SQLiteStore) DeleteExpiredKeywordAnalyses(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM keyword_analyses WHERE expires_at <= ?`, now.UnixMicro())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IncrementAnalysisLookup upserts a keyword lookup count by outcome.
func (s *SQLiteStore) IncrementAnalysisLookup(ctx context.Context, keyword, outcome string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_lookups (keyword, outcome, count, last_seen_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (keyword, outcome) DO UPDATE
		SET count = analysis_lookups.count + 1, last_seen_at = excluded.last_seen_at
	`, keyword, outcome, time.Now().UnixMicro())
	return err
}

// GetAllAnalysisLookups returns all keyword lookup rows for metrics export.
func (s *SQLiteStore) GetAllAnalysisLookups(ctx context.Context) ([]models.KeywordLookup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT keyword, outcome, count, last_seen_at FROM analysis_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.KeywordLookup
	for rows.Next() {
		var l models.KeywordLookup
		var seen int64
		if err := rows.Scan(&l.Keyword, &l.Outcome, &l.Count, &seen); err != nil {
			return nil, err
		}
		l.LastSeenAt = time.UnixMicro(seen).UTC()
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
