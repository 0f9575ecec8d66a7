package content

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads content straight from the murlis, abhyas and
// course_days tables.
type PostgresSource struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

var _ Source = (*PostgresSource)(nil)

// NewPostgresSource connects to dsn and checks the connection. timeout bounds
// the connect and every query; zero uses the default request timeout.
func NewPostgresSource(ctx context.Context, dsn string, timeout time.Duration) (*PostgresSource, error) {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 3
	cfg.ConnConfig.ConnectTimeout = timeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresSource{pool: pool, timeout: timeout}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

func (s *PostgresSource) Readings(ctx context.Context) ([]Reading, error) {
	const q = `
		SELECT id::text, date::text, type, title_hindi, content_hindi, content_english,
		       COALESCE(audio_url, ''), COALESCE(youtube_id, '')
		FROM murlis
		ORDER BY date DESC`
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query murlis: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Reading, error) {
		var r Reading
		var category string
		err := row.Scan(&r.ID, &r.Date, &category, &r.TitleHindi, &r.ContentHindi,
			&r.ContentEnglish, &r.AudioURL, &r.YouTubeID)
		r.Category = Category(category)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan murlis: %w", err)
	}
	return out, nil
}

func (s *PostgresSource) Forms(ctx context.Context) ([]PracticeForm, error) {
	const q = `
		SELECT id::text, title, hindi_title, description, description_hindi, color_theme
		FROM abhyas`
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query abhyas: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PracticeForm, error) {
		var f PracticeForm
		err := row.Scan(&f.ID, &f.Title, &f.HindiTitle, &f.Description, &f.DescriptionHindi, &f.ColorTheme)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan abhyas: %w", err)
	}
	return out, nil
}

func (s *PostgresSource) Days(ctx context.Context) ([]CourseDay, error) {
	const q = `
		SELECT day, title, title_hindi, theme_hindi, COALESCE(resources, '{}'),
		       reflection, reflection_hindi
		FROM course_days
		ORDER BY day ASC`
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query course_days: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CourseDay, error) {
		var d CourseDay
		err := row.Scan(&d.Day, &d.Title, &d.TitleHindi, &d.ThemeHindi, &d.Resources,
			&d.Reflection, &d.ReflectionHindi)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan course_days: %w", err)
	}
	return out, nil
}
