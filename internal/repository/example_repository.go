package repository

import (
	"context"
	"errors"

	"misto-helper/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ExampleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExampleRepository(db *pgxpool.Pool, logger *zap.Logger) *ExampleRepository {
	return &ExampleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExampleRepository) Create(ctx context.Context, ex *models.Example) error {
	embeddingArray := pgtype.FlatArray[float32](ex.Embedding)

	query := squirrel.Insert("examples").
		Columns("category_id", "text", "is_urgent", "embedding").
		Values(ex.CategoryID, ex.Text, ex.IsUrgent, embeddingArray).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&ex.ID)
}

// GetByText looks up an example by its exact text within a category.
// The seeder uses it to skip already-embedded examples.
func (r *ExampleRepository) GetByText(ctx context.Context, categoryID, text string) (*models.Example, error) {
	query := squirrel.Select("id", "category_id", "text", "is_urgent").
		From("examples").
		Where(squirrel.Eq{"category_id": categoryID, "text": text}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var ex models.Example
	err = r.db.QueryRow(ctx, sql, args...).Scan(&ex.ID, &ex.CategoryID, &ex.Text, &ex.IsUrgent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ex, nil
}

// SearchNearest returns up to k examples ordered by cosine distance to the
// query embedding (pgvector <=> operator), nearest first. An optional filter
// restricts candidates to an inclusive id range of trusted labels.
func (r *ExampleRepository) SearchNearest(
	ctx context.Context,
	embedding []float32,
	k int,
	filter *models.ExampleFilter,
) ([]models.ScoredExample, error) {
	embeddingArray := pgtype.FlatArray[float32](embedding)

	query := squirrel.Select("id", "category_id", "text", "is_urgent", "embedding").
		Column(squirrel.Expr("embedding <=> ? AS distance", embeddingArray)).
		From("examples").
		OrderBy("distance ASC").
		Limit(uint64(k)).
		PlaceholderFormat(squirrel.Dollar)

	if filter != nil {
		query = query.Where(squirrel.And{
			squirrel.GtOrEq{"id": filter.IDFrom},
			squirrel.LtOrEq{"id": filter.IDTo},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.ScoredExample
	for rows.Next() {
		var ex models.ScoredExample
		var embeddingData pgtype.FlatArray[float32]

		if err := rows.Scan(
			&ex.ID, &ex.CategoryID, &ex.Text, &ex.IsUrgent, &embeddingData, &ex.Distance,
		); err != nil {
			return nil, err
		}

		ex.Embedding = []float32(embeddingData)
		results = append(results, ex)
	}

	return results, rows.Err()
}
