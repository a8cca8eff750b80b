package store

import (
	"context"
	"fmt"

	"visadesk/internal/utils"
	"visadesk/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentTableName = "visadesk.case_documents"

var documentColumns = utils.StructTagValues(types.CaseDocument{})

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// DocumentByID retrieves a single document record by ID
func (r *DocumentRepository) DocumentByID(ctx context.Context, id string) (*types.CaseDocument, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document query: %w", err)
	}

	var doc = new(types.CaseDocument)
	err = pgxscan.Get(ctx, r.pool, doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return doc, nil
}

// DocumentsByCase retrieves every uploaded version for a case, newest first.
func (r *DocumentRepository) DocumentsByCase(ctx context.Context, caseID string) ([]*types.CaseDocument, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("definition_key ASC", "version DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents query: %w", err)
	}

	var docs []*types.CaseDocument
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return docs, nil
}

// DocumentsByDefinition retrieves the version history for one definition in
// a case, newest first.
func (r *DocumentRepository) DocumentsByDefinition(ctx context.Context, caseID, definitionKey string) ([]*types.CaseDocument, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"case_id": caseID, "definition_key": definitionKey}).
		OrderBy("version DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate documents query: %w", err)
	}

	var docs []*types.CaseDocument
	err = pgxscan.Select(ctx, r.pool, &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	return docs, nil
}

// CreateDocument inserts a new record, assigning the next version for its
// definition within the case. Versions are monotonically increasing, oldest
// = 1.
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *types.CaseDocument) error {
	if doc.ID == "" {
		doc.ID = utils.NanoID()
	}

	versionQuery, versionArgs, err := psql().
		Select("COALESCE(MAX(version), 0) + 1").
		From(documentTableName).
		Where(sq.Eq{"case_id": doc.CaseID, "definition_key": doc.DefinitionKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate version query: %w", err)
	}

	err = r.pool.QueryRow(ctx, versionQuery, versionArgs...).Scan(&doc.Version)
	if err != nil {
		return fmt.Errorf("failed to assign document version: %w", err)
	}

	query, args, err := psql().
		Insert(documentTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to insert document")
}

// DeleteDocument removes a document record scoped to its owner.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id, userID string) error {
	query, args, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete document query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to delete document")
}

// DeleteDocumentsByCase removes all records for a case.
func (r *DocumentRepository) DeleteDocumentsByCase(ctx context.Context, caseID string) error {
	query, args, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"case_id": caseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete documents query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.WrapError(err, "failed to delete documents")
}
