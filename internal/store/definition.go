package store

import (
	"context"
	"fmt"

	"visadesk/internal/utils"
	"visadesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const definitionTableName = "visadesk.document_definitions"

// DefinitionRepository maintains the database mirror of the compile-time
// document catalog. The engine never reads this table; it exists for admin
// reporting and ad hoc queries, synced by `visadesk seed`.
type DefinitionRepository struct {
	pool *pgxpool.Pool
}

func NewDefinitionRepository(pool *pgxpool.Pool) *DefinitionRepository {
	return &DefinitionRepository{pool: pool}
}

// AllKeys returns every definition key currently mirrored.
func (r *DefinitionRepository) AllKeys(ctx context.Context) ([]string, error) {
	query, args, err := psql().
		Select("key").
		From(definitionTableName).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate definition keys query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch definition keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan definition key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// UpsertDefinition writes one catalog entry into the mirror. RequiredWhen
// and Roles land as jsonb.
func (r *DefinitionRepository) UpsertDefinition(ctx context.Context, def *types.DocumentDefinition) error {
	var requiredWhen []byte
	if def.RequiredWhen != nil {
		requiredWhen = utils.MustMarshalJSON(def.RequiredWhen)
	}

	query, args, err := psql().
		Insert(definitionTableName).
		Columns(
			"key", "name", "description", "category", "roles",
			"required", "validity_type", "validity_days", "default_warn_days",
			"required_when",
		).
		Values(
			def.Key,
			def.Name,
			def.Description,
			def.Category,
			utils.MustMarshalJSON(def.Roles),
			def.Required,
			def.ValidityType,
			def.ValidityDays,
			def.DefaultWarnDays,
			requiredWhen,
		).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			roles = EXCLUDED.roles,
			required = EXCLUDED.required,
			validity_type = EXCLUDED.validity_type,
			validity_days = EXCLUDED.validity_days,
			default_warn_days = EXCLUDED.default_warn_days,
			required_when = EXCLUDED.required_when`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert definition query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to upsert definition")
}

// DeleteDefinition removes a mirrored entry that no longer exists in code.
func (r *DefinitionRepository) DeleteDefinition(ctx context.Context, key string) error {
	query, args, err := psql().
		Delete(definitionTableName).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete definition query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to delete definition")
}
