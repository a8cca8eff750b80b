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

const notificationTableName = "visadesk.notification_configs"

var notificationColumns = utils.StructTagValues(types.NotificationConfig{})

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// ConfigByUser fetches the user's notification config, creating one with
// default preferences on first use.
func (r *NotificationRepository) ConfigByUser(ctx context.Context, userID string) (*types.NotificationConfig, error) {
	query, args, err := psql().
		Select(notificationColumns...).
		From(notificationTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification config query: %w", err)
	}

	var cfg = new(types.NotificationConfig)
	err = pgxscan.Get(ctx, r.pool, cfg, query, args...)
	if err == nil {
		return cfg, nil
	}
	if !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch notification config: %w", err)
	}

	cfg = &types.NotificationConfig{
		UserID:                  userID,
		NotificationPreferences: types.DefaultNotificationPreferences(),
	}
	if err := r.createConfig(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (r *NotificationRepository) createConfig(ctx context.Context, cfg *types.NotificationConfig) error {
	now := time.Now()
	cfg.ID = utils.NanoID()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	query, args, err := psql().
		Insert(notificationTableName).
		SetMap(utils.StructToMap(cfg)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert notification config query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to insert notification config")
}

// UpdateConfig persists throttle timestamps and preference changes.
func (r *NotificationRepository) UpdateConfig(ctx context.Context, cfg *types.NotificationConfig) error {
	cfg.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(notificationTableName).
		SetMap(utils.StructToMap(cfg)).
		Where(sq.Eq{"id": cfg.ID, "user_id": cfg.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update notification config query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to update notification config")
}
