package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"provisionbot/internal/commission"
	"provisionbot/internal/config"
	"provisionbot/pkg/redis"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset name")
)

// Cache is the subset of pkg/redis used for read-through preset lookups.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any) error
	Del(ctx context.Context, keys ...string) error
}

var _ Cache = (*redis.Client)(nil)

// NoCache always misses. Used when Redis is not available, e.g. for
// one-off migration runs.
type NoCache struct{}

func (NoCache) GetJSON(context.Context, string, any) error { return redis.ErrMiss }
func (NoCache) SetJSON(context.Context, string, any) error { return nil }
func (NoCache) Del(context.Context, ...string) error { return nil }

type PostgresStorage struct {
	db     *sqlx.DB
	cache  Cache
	logger *zap.Logger
}

// Preset is a named input configuration users can load with /preset.
type Preset struct {
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description"`
	TotalDeals       float64   `db:"total_deals" json:"total_deals"`
	StartupFee       float64   `db:"startup_fee" json:"startup_fee"`
	MonthlyFee       float64   `db:"monthly_fee" json:"monthly_fee"`
	GuaranteedPeriod float64   `db:"guaranteed_period" json:"guaranteed_period"`
	LifetimeMonths   float64   `db:"lifetime_months" json:"lifetime_months"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Inputs returns the preset's values clamped to the reference ranges.
func (p Preset) Inputs() commission.Inputs {
	return commission.Clamp(commission.Inputs{
		TotalDeals:       p.TotalDeals,
		StartupFee:       p.StartupFee,
		MonthlyFee:       p.MonthlyFee,
		GuaranteedPeriod: p.GuaranteedPeriod,
		LifetimeMonths:   p.LifetimeMonths,
	})
}

// NewPreset captures in under name.
func NewPreset(name, description string, in commission.Inputs) (Preset, error) {
	name = NormalizePresetName(name)
	if name == "" || len(name) > 64 {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, name)
	}
	return Preset{
		Name:             name,
		Description:      strings.TrimSpace(description),
		TotalDeals:       in.TotalDeals,
		StartupFee:       in.StartupFee,
		MonthlyFee:       in.MonthlyFee,
		GuaranteedPeriod: in.GuaranteedPeriod,
		LifetimeMonths:   in.LifetimeMonths,
	}, nil
}

func NormalizePresetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, cache Cache, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err := backoff.RetryNotify(
		func() error {
			conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = conn.PingContext(ctx); err != nil {
				_ = conn.Close()
				return fmt.Errorf("ping: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return NewWithDB(db, cache, logger), nil
}

// NewWithDB wraps an already opened database.
func NewWithDB(db *sqlx.DB, cache Cache, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

const presetColumns = `name, description, total_deals, startup_fee, monthly_fee,
        guaranteed_period, lifetime_months, created_at`

func (s *PostgresStorage) ListPresets(ctx context.Context) ([]Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets ORDER BY name`

	var presets []Preset
	if err := s.db.SelectContext(ctx, &presets, query); err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return presets, nil
}

func (s *PostgresStorage) GetPreset(ctx context.Context, name string) (*Preset, error) {
	name = NormalizePresetName(name)
	cacheKey := presetCacheKey(name)

	var cached Preset
	if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, redis.ErrMiss) {
		s.logger.Warn("Preset cache read failed",
			zap.String("preset", name),
			zap.Error(err))
	}

	query := `SELECT ` + presetColumns + ` FROM presets WHERE name = $1`

	var preset Preset
	if err := s.db.GetContext(ctx, &preset, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}

	if err := s.cache.SetJSON(ctx, cacheKey, preset); err != nil {
		s.logger.Warn("Preset cache write failed",
			zap.String("preset", name),
			zap.Error(err))
	}

	return &preset, nil
}

// SavePreset inserts or replaces a preset by name.
func (s *PostgresStorage) SavePreset(ctx context.Context, preset Preset) error {
	const query = `
        INSERT INTO presets (
            name, description, total_deals, startup_fee, monthly_fee,
            guaranteed_period, lifetime_months
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (name) DO UPDATE SET
            description = EXCLUDED.description,
            total_deals = EXCLUDED.total_deals,
            startup_fee = EXCLUDED.startup_fee,
            monthly_fee = EXCLUDED.monthly_fee,
            guaranteed_period = EXCLUDED.guaranteed_period,
            lifetime_months = EXCLUDED.lifetime_months
    `

	_, err := s.db.ExecContext(ctx, query,
		preset.Name,
		preset.Description,
		preset.TotalDeals,
		preset.StartupFee,
		preset.MonthlyFee,
		preset.GuaranteedPeriod,
		preset.LifetimeMonths,
	)
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}

	s.invalidate(ctx, preset.Name)
	return nil
}

func (s *PostgresStorage) DeletePreset(ctx context.Context, name string) error {
	name = NormalizePresetName(name)

	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}

	s.invalidate(ctx, name)
	return nil
}

func (s *PostgresStorage) invalidate(ctx context.Context, name string) {
	if err := s.cache.Del(ctx, presetCacheKey(name)); err != nil {
		s.logger.Warn("Preset cache invalidation failed",
			zap.String("preset", name),
			zap.Error(err))
	}
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func presetCacheKey(name string) string {
	return fmt.Sprintf("preset:%s", name)
}
