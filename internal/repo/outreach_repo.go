package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type OutreachRepo struct {
	db *sql.DB
}

func NewOutreachRepo(db *sql.DB) *OutreachRepo {
	return &OutreachRepo{db: db}
}

var outreachFields = []string{
	"id", "prospect_id", "event_id", "draft_type", "content", "status", "ctime", "mtime",
}

func scanDraft(scan func(dest ...interface{}) error) (*model.OutreachDraft, error) {
	var item model.OutreachDraft
	var eventID sql.NullInt64
	err := scan(&item.ID, &item.ProspectID, &eventID, &item.DraftType,
		&item.Content, &item.Status, &item.Ctime, &item.Mtime)
	if err != nil {
		return nil, err
	}
	item.EventID = eventID.Int64
	return &item, nil
}

func (r *OutreachRepo) Create(ctx context.Context, item *model.OutreachDraft) (*model.OutreachDraft, error) {
	const query = `
		INSERT INTO outreach_drafts (prospect_id, event_id, draft_type, content, status, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var eventID interface{}
	if item.EventID != 0 {
		eventID = item.EventID
	}
	row := r.db.QueryRowContext(ctx, query,
		item.ProspectID, eventID, item.DraftType, item.Content, item.Status, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *OutreachRepo) GetByID(ctx context.Context, id int64) (*model.OutreachDraft, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("outreach_drafts", where, outreachFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanDraft(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *OutreachRepo) ListByProspect(ctx context.Context, prospectID int64) ([]model.OutreachDraft, error) {
	where := map[string]interface{}{"prospect_id": prospectID, "_orderby": "id desc"}
	sqlStr, args, err := builder.BuildSelect("outreach_drafts", where, outreachFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.OutreachDraft
	for rows.Next() {
		item, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *OutreachRepo) UpdateStatus(ctx context.Context, id int64, status string, now int64) error {
	sqlStr, args, err := builder.BuildUpdate("outreach_drafts",
		map[string]interface{}{"id": id},
		map[string]interface{}{"status": status, "mtime": now})
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

func (r *OutreachRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("outreach_drafts", map[string]interface{}{"id": id})
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
