package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ytinsight/internal/models"
)

// GetKeywordAnalysis returns the stored analysis for keyword, expired or not.
func (d *DB) GetKeywordAnalysis(ctx context.Context, keyword string) (*models.KeywordAnalysis, error) {
	var a models.KeywordAnalysis
	var related []byte
	err := d.Pool.QueryRow(ctx, `
		SELECT id, keyword, search_volume, competition, recommendation_score,
		       related_keywords, analyzed_at, expires_at
		FROM keyword_analyses
		WHERE keyword = $1
	`, keyword).Scan(
		&a.ID, &a.Keyword, &a.SearchVolume, &a.Competition, &a.RecommendationScore,
		&related, &a.AnalyzedAt, &a.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(related, &a.RelatedKeywords); err != nil {
		return nil, fmt.Errorf("decode related keywords: %w", err)
	}
	a.AnalyzedAt = a.AnalyzedAt.UTC()
	a.ExpiresAt = a.ExpiresAt.UTC()
	return &a, nil
}

// UpsertKeywordAnalysis inserts or overwrites the analysis for a.Keyword.
// The row id is kept across overwrites and written back into a.ID.
func (d *DB) UpsertKeywordAnalysis(ctx context.Context, a *models.KeywordAnalysis) error {
	related, err := json.Marshal(relatedOrEmpty(a.RelatedKeywords))
	if err != nil {
		return fmt.Errorf("encode related keywords: %w", err)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return d.Pool.QueryRow(ctx, `
		INSERT INTO keyword_analyses (id, keyword, search_volume, competition, recommendation_score,
		                              related_keywords, analyzed_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (keyword) DO UPDATE
		SET search_volume = EXCLUDED.search_volume,
		    competition = EXCLUDED.competition,
		    recommendation_score = EXCLUDED.recommendation_score,
		    related_keywords = EXCLUDED.related_keywords,
		    analyzed_at = EXCLUDED.analyzed_at,
		    expires_at = EXCLUDED.expires_at
		RETURNING id
	`, a.ID, a.Keyword, a.SearchVolume, a.Competition, a.RecommendationScore,
		string(related), a.AnalyzedAt, a.ExpiresAt,
	).Scan(&a.ID)
}

// DeleteExpiredKeywordAnalyses removes every analysis that expired at or before now.
func (d *DB) DeleteExpiredKeywordAnalyses(ctx context.Context, now time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM keyword_analyses WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func relatedOrEmpty(r []models.RelatedKeyword) []models.RelatedKeyword {
	if r == nil {
		return []models.RelatedKeyword{}
	}
	return r
}
