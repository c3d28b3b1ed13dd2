package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

// SolutionVectorRepo persists one embedding row per chunk of a solution's
// text. Every operation is a single statement, so concurrent readers observe
// either the pre- or post-state of a row, never a partial write.
type SolutionVectorRepo struct {
	db *sql.DB
}

func NewSolutionVectorRepo(db *sql.DB) *SolutionVectorRepo {
	return &SolutionVectorRepo{db: db}
}

func (r *SolutionVectorRepo) Create(ctx context.Context, solutionID int64, embedding []float32) (*model.SolutionVector, error) {
	const query = `
		INSERT INTO solution_vectors (solution_id, embedding)
		VALUES ($1, $2)
		RETURNING id
	`
	item := &model.SolutionVector{SolutionID: solutionID, Embedding: embedding}
	row := r.db.QueryRowContext(ctx, query, solutionID, pgvector.NewVector(embedding))
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *SolutionVectorRepo) GetByID(ctx context.Context, id int64) (*model.SolutionVector, error) {
	const query = `SELECT id, solution_id, embedding FROM solution_vectors WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	var item model.SolutionVector
	var emb pgvector.Vector
	if err := row.Scan(&item.ID, &item.SolutionID, &emb); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	item.Embedding = emb.Slice()
	return &item, nil
}

// UpdateEmbedding replaces the embedding in place; id and solution_id are
// immutable.
func (r *SolutionVectorRepo) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) (*model.SolutionVector, error) {
	const query = `
		UPDATE solution_vectors SET embedding = $2 WHERE id = $1
		RETURNING id, solution_id
	`
	item := &model.SolutionVector{Embedding: embedding}
	row := r.db.QueryRowContext(ctx, query, id, pgvector.NewVector(embedding))
	if err := row.Scan(&item.ID, &item.SolutionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Delete reports whether a row was removed; deleting a missing row is not an
// error, the second call simply returns false.
func (r *SolutionVectorRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM solution_vectors WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SolutionVectorRepo) DeleteByParent(ctx context.Context, solutionID int64) (int64, error) {
	const query = `DELETE FROM solution_vectors WHERE solution_id = $1`
	result, err := r.db.ExecContext(ctx, query, solutionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListCandidates returns vector rows for ranking, optionally pre-filtered by
// the parent solution's category and by keywords. Keywords are any-of: a
// candidate survives when at least one of them case-insensitively
// substring-matches the solution's name, description or keyword list.
func (r *SolutionVectorRepo) ListCandidates(ctx context.Context, category string, keywords []string) ([]model.SolutionVector, error) {
	query := `
		SELECT v.id, v.solution_id, v.embedding
		FROM solution_vectors v
		JOIN solutions s ON s.id = v.solution_id
	`
	var conds []string
	var args []interface{}
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("s.category = $%d", len(args)))
	}
	if len(keywords) > 0 {
		var anyOf []string
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			args = append(args, "%"+kw+"%")
			anyOf = append(anyOf, fmt.Sprintf(
				"(s.name || ' ' || s.description || ' ' || COALESCE(s.keywords::text, '')) ILIKE $%d", len(args)))
		}
		if len(anyOf) > 0 {
			conds = append(conds, "("+strings.Join(anyOf, " OR ")+")")
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.SolutionVector
	for rows.Next() {
		var item model.SolutionVector
		var emb pgvector.Vector
		if err := rows.Scan(&item.ID, &item.SolutionID, &emb); err != nil {
			return nil, err
		}
		item.Embedding = emb.Slice()
		items = append(items, item)
	}
	return items, rows.Err()
}
