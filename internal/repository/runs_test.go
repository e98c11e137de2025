package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/food-recommender/internal/entity"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	return s.scan(dest...)
}

func TestPGXRunsRepository_SaveValidation(t *testing.T) {
	repo := &PGXRunsRepository{}
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil run")
	}
}

func TestPGXRunsRepository_Save(t *testing.T) {
	created := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	run := &entity.RecommendationRun{
		Query:  "철원군청",
		Menu:   entity.MenuHearty,
		Party:  entity.PartySolo,
		Venues: []entity.Venue{{Name: "장터국밥", Score: 115}},
	}

	repo := &PGXRunsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if !strings.Contains(query, "INSERT INTO recommendation_runs") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 {
				t.Fatalf("expected 9 args, got %d", len(args))
			}
			if id, _ := args[0].(uuid.UUID); id == uuid.Nil {
				t.Fatalf("expected generated id")
			}
			if args[5] != "hearty_meal" || args[6] != "solo" {
				t.Fatalf("unexpected enum args: %v %v", args[5], args[6])
			}
			var venues []entity.Venue
			if err := json.Unmarshal(args[8].([]byte), &venues); err != nil || len(venues) != 1 {
				t.Fatalf("unexpected venues payload: %s", args[8])
			}
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*time.Time) = created
				return nil
			}}
		},
	}}

	if err := repo.Save(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.ID == uuid.Nil || !run.CreatedAt.Equal(created) {
		t.Fatalf("expected id and created_at populated, got %+v", run)
	}
}

func TestPGXRunsRepository_Get(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	repo := &PGXRunsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = id
				*dest[1].(*string) = "철원군청"
				*dest[2].(*string) = "철원군청"
				*dest[3].(*float64) = 38.1467
				*dest[4].(*float64) = 127.3136
				*dest[5].(*string) = "delivery"
				*dest[6].(*string) = "small_group"
				*dest[7].(*int) = 2000
				*dest[8].(*[]byte) = []byte(`[{"name":"치킨집","score":120,"reasons":["delivery-popular"]}]`)
				*dest[9].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	run, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Menu != entity.MenuDelivery || run.Party != entity.PartySmallGroup {
		t.Fatalf("unexpected enums: %+v", run)
	}
	if len(run.Venues) != 1 || run.Venues[0].Name != "치킨집" || run.Venues[0].Reasons[0] != "delivery-popular" {
		t.Fatalf("unexpected venues: %+v", run.Venues)
	}
}

func TestPGXRunsRepository_GetNotFound(t *testing.T) {
	repo := &PGXRunsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	if _, err := repo.Get(context.Background(), uuid.New()); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestNoopRunsRepository(t *testing.T) {
	var repo RunsRepository = NoopRunsRepository{}
	if err := repo.Save(context.Background(), &entity.RecommendationRun{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Get(context.Background(), uuid.New()); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestPGXRunsRepository_EnsureSchema(t *testing.T) {
	var executed string
	repo := &PGXRunsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			executed = query
			return pgconn.CommandTag{}, nil
		},
	}}
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(executed, "CREATE TABLE IF NOT EXISTS recommendation_runs") {
		t.Fatalf("unexpected ddl: %s", executed)
	}

	failing := &PGXRunsRepository{pool: &stubPool{}}
	if err := failing.EnsureSchema(context.Background()); err == nil {
		t.Fatalf("expected exec error to surface")
	}
}
