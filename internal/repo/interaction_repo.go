package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type InteractionRepo struct {
	db *sql.DB
}

func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

var interactionFields = []string{
	"id", "prospect_id", "event_id", "interaction_type", "interaction_date",
	"subject", "content", "sentiment", "outcome", "ctime", "mtime",
}

func scanInteraction(scan func(dest ...interface{}) error) (*model.Interaction, error) {
	var item model.Interaction
	var eventID sql.NullInt64
	err := scan(&item.ID, &item.ProspectID, &eventID, &item.InteractionType,
		&item.InteractionDate, &item.Subject, &item.Content, &item.Sentiment,
		&item.Outcome, &item.Ctime, &item.Mtime)
	if err != nil {
		return nil, err
	}
	item.EventID = eventID.Int64
	return &item, nil
}

func (r *InteractionRepo) Create(ctx context.Context, item *model.Interaction) (*model.Interaction, error) {
	const query = `
		INSERT INTO interactions (prospect_id, event_id, interaction_type, interaction_date,
			subject, content, sentiment, outcome, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var eventID interface{}
	if item.EventID != 0 {
		eventID = item.EventID
	}
	row := r.db.QueryRowContext(ctx, query,
		item.ProspectID, eventID, item.InteractionType, item.InteractionDate,
		item.Subject, item.Content, item.Sentiment, item.Outcome, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *InteractionRepo) GetByID(ctx context.Context, id int64) (*model.Interaction, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("interactions", where, interactionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanInteraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *InteractionRepo) List(ctx context.Context) ([]model.Interaction, error) {
	return r.listWhere(ctx, map[string]interface{}{"_orderby": "id asc"})
}

func (r *InteractionRepo) ListByProspect(ctx context.Context, prospectID int64, limit int) ([]model.Interaction, error) {
	where := map[string]interface{}{"prospect_id": prospectID, "_orderby": "interaction_date desc"}
	if limit > 0 {
		where["_limit"] = []uint{0, uint(limit)}
	}
	return r.listWhere(ctx, where)
}

func (r *InteractionRepo) listWhere(ctx context.Context, where map[string]interface{}) ([]model.Interaction, error) {
	sqlStr, args, err := builder.BuildSelect("interactions", where, interactionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Interaction
	for rows.Next() {
		item, err := scanInteraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *InteractionRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("interactions", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *InteractionRepo) ListMissingVectors(ctx context.Context, limit int) ([]model.Interaction, error) {
	const query = `
		SELECT i.id, i.prospect_id, i.event_id, i.interaction_type, i.interaction_date,
			i.subject, i.content, i.sentiment, i.outcome, i.ctime, i.mtime
		FROM interactions i
		LEFT JOIN interaction_vectors v ON i.id = v.interaction_id
		WHERE v.id IS NULL
		ORDER BY i.id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Interaction
	for rows.Next() {
		item, err := scanInteraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
