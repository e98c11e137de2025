package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/food-recommender/internal/entity"
)

// ErrRunNotFound is returned when no run matches the id, or the run log is
// disabled.
var ErrRunNotFound = errors.New("recommendation run not found")

// RunsRepository persists served recommendations.
type RunsRepository interface {
	Save(ctx context.Context, run *entity.RecommendationRun) error
	Get(ctx context.Context, id uuid.UUID) (*entity.RecommendationRun, error)
}

type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXRunsRepository implements RunsRepository on the recommendation_runs table.
type PGXRunsRepository struct {
	pool pgxPool
}

// NewPGXRunsRepository wires a pgx backed run log.
func NewPGXRunsRepository(pool *pgxpool.Pool) *PGXRunsRepository {
	return &PGXRunsRepository{pool: pool}
}

const runsSchema = `
CREATE TABLE IF NOT EXISTS recommendation_runs (
    id          UUID PRIMARY KEY,
    query       TEXT NOT NULL,
    center_name TEXT NOT NULL,
    center_lat  DOUBLE PRECISION NOT NULL,
    center_lon  DOUBLE PRECISION NOT NULL,
    menu        TEXT NOT NULL,
    party       TEXT NOT NULL,
    radius_m    INTEGER NOT NULL,
    venues      JSONB NOT NULL DEFAULT '[]'::jsonb,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the recommendation_runs table when missing.
func (r *PGXRunsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, runsSchema); err != nil {
		return fmt.Errorf("create recommendation_runs: %w", err)
	}
	return nil
}

// Save inserts run, assigning an id when it has none, and fills CreatedAt.
func (r *PGXRunsRepository) Save(ctx context.Context, run *entity.RecommendationRun) error {
	if run == nil {
		return fmt.Errorf("run payload is nil")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	venues := run.Venues
	if venues == nil {
		venues = []entity.Venue{}
	}
	payload, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("encode venues: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO recommendation_runs (
            id, query, center_name, center_lat, center_lon, menu, party, radius_m, venues
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `, run.ID, run.Query, run.CenterName, run.CenterLat, run.CenterLon, string(run.Menu), string(run.Party), run.RadiusM, payload)

	if err := row.Scan(&run.CreatedAt); err != nil {
		return fmt.Errorf("insert recommendation run: %w", err)
	}
	return nil
}

// Get loads a run by id.
func (r *PGXRunsRepository) Get(ctx context.Context, id uuid.UUID) (*entity.RecommendationRun, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, query, center_name, center_lat, center_lon, menu, party, radius_m, venues, created_at
        FROM recommendation_runs
        WHERE id = $1
    `, id)

	var (
		run     entity.RecommendationRun
		menu    string
		party   string
		payload []byte
	)
	if err := row.Scan(&run.ID, &run.Query, &run.CenterName, &run.CenterLat, &run.CenterLon, &menu, &party, &run.RadiusM, &payload, &run.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("query recommendation run: %w", err)
	}
	run.Menu = entity.MenuType(menu)
	run.Party = entity.PartySize(party)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &run.Venues); err != nil {
			return nil, fmt.Errorf("decode venues: %w", err)
		}
	}
	return &run, nil
}

// NoopRunsRepository is used when no database is configured.
type NoopRunsRepository struct{}

func (NoopRunsRepository) Save(context.Context, *entity.RecommendationRun) error { return nil }

func (NoopRunsRepository) Get(context.Context, uuid.UUID) (*entity.RecommendationRun, error) {
	return nil, ErrRunNotFound
}
