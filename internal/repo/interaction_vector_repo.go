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

type InteractionVectorRepo struct {
	db *sql.DB
}

func NewInteractionVectorRepo(db *sql.DB) *InteractionVectorRepo {
	return &InteractionVectorRepo{db: db}
}

func (r *InteractionVectorRepo) Create(ctx context.Context, interactionID int64, embedding []float32) (*model.InteractionVector, error) {
	const query = `
		INSERT INTO interaction_vectors (interaction_id, embedding)
		VALUES ($1, $2)
		RETURNING id
	`
	item := &model.InteractionVector{InteractionID: interactionID, Embedding: embedding}
	row := r.db.QueryRowContext(ctx, query, interactionID, pgvector.NewVector(embedding))
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *InteractionVectorRepo) GetByID(ctx context.Context, id int64) (*model.InteractionVector, error) {
	const query = `SELECT id, interaction_id, embedding FROM interaction_vectors WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	var item model.InteractionVector
	var emb pgvector.Vector
	if err := row.Scan(&item.ID, &item.InteractionID, &emb); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	item.Embedding = emb.Slice()
	return &item, nil
}

func (r *InteractionVectorRepo) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) (*model.InteractionVector, error) {
	const query = `
		UPDATE interaction_vectors SET embedding = $2 WHERE id = $1
		RETURNING id, interaction_id
	`
	item := &model.InteractionVector{Embedding: embedding}
	row := r.db.QueryRowContext(ctx, query, id, pgvector.NewVector(embedding))
	if err := row.Scan(&item.ID, &item.InteractionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *InteractionVectorRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM interaction_vectors WHERE id = $1`
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

func (r *InteractionVectorRepo) DeleteByParent(ctx context.Context, interactionID int64) (int64, error) {
	const query = `DELETE FROM interaction_vectors WHERE interaction_id = $1`
	result, err := r.db.ExecContext(ctx, query, interactionID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListCandidates returns vector rows for ranking. prospectID scopes the
// search to one prospect (0 means no scoping, used by the raw collection
// search); interactionType and keywords are optional. Keywords are any-of,
// case-insensitive substring matches against the interaction's subject and
// content.
func (r *InteractionVectorRepo) ListCandidates(ctx context.Context, prospectID int64, interactionType string, keywords []string) ([]model.InteractionVector, error) {
	query := `
		SELECT v.id, v.interaction_id, v.embedding
		FROM interaction_vectors v
		JOIN interactions i ON i.id = v.interaction_id
	`
	var conds []string
	var args []interface{}
	if prospectID != 0 {
		args = append(args, prospectID)
		conds = append(conds, fmt.Sprintf("i.prospect_id = $%d", len(args)))
	}
	if interactionType != "" {
		args = append(args, interactionType)
		conds = append(conds, fmt.Sprintf("i.interaction_type = $%d", len(args)))
	}
	if len(keywords) > 0 {
		var anyOf []string
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			args = append(args, "%"+kw+"%")
			anyOf = append(anyOf, fmt.Sprintf("(i.subject || ' ' || i.content) ILIKE $%d", len(args)))
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
	var items []model.InteractionVector
	for rows.Next() {
		var item model.InteractionVector
		var emb pgvector.Vector
		if err := rows.Scan(&item.ID, &item.InteractionID, &emb); err != nil {
			return nil, err
		}
		item.Embedding = emb.Slice()
		items = append(items, item)
	}
	return items, rows.Err()
}
