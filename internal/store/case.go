package store

import (
	"context"
	"fmt"
	"time"

	"visadesk/internal/utils"
	"visadesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const caseTableName = "visadesk.case_configs"

var caseColumns = utils.StructTagValues(types.CaseConfig{})

type CaseRepository struct {
	pool *pgxpool.Pool
}

func NewCaseRepository(pool *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{pool: pool}
}

// CaseByUser fetches the user's case configuration. One case per user.
func (r *CaseRepository) CaseByUser(ctx context.Context, userID string) (*types.CaseConfig, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate case query: %w", err)
	}

	var cfg = new(types.CaseConfig)
	err = pgxscan.Get(ctx, r.pool, cfg, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}

	return cfg, nil
}

// AllCases returns every case configuration; used by the notification sweep.
func (r *CaseRepository) AllCases(ctx context.Context) ([]*types.CaseConfig, error) {
	query, args, err := psql().
		Select(caseColumns...).
		From(caseTableName).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cases query: %w", err)
	}

	var cases []*types.CaseConfig
	err = pgxscan.Select(ctx, r.pool, &cases, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}

	return cases, nil
}

func (r *CaseRepository) CreateCase(ctx context.Context, cfg *types.CaseConfig) error {
	now := time.Now()
	cfg.ID = utils.NanoID()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	query, args, err := psql().
		Insert(caseTableName).
		SetMap(utils.StructToMap(cfg)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert case query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to insert case")
}

func (r *CaseRepository) UpdateCase(ctx context.Context, cfg *types.CaseConfig) error {
	cfg.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(caseTableName).
		SetMap(utils.StructToMap(cfg)).
		Where(sq.Eq{"id": cfg.ID, "user_id": cfg.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update case query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to update case")
}

func (r *CaseRepository) DeleteCase(ctx context.Context, userID string) error {
	query, args, err := psql().
		Delete(caseTableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete case query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to delete case")
}
