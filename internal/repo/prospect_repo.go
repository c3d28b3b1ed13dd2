package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type ProspectRepo struct {
	db *sql.DB
}

func NewProspectRepo(db *sql.DB) *ProspectRepo {
	return &ProspectRepo{db: db}
}

var prospectFields = []string{
	"id", "full_name", "email", "linkedin_url", "location", "company_id",
	"last_contacted_at", "is_active", "status", "ctime", "mtime",
}

func (r *ProspectRepo) scanOne(row *sql.Row) (*model.Prospect, error) {
	var item model.Prospect
	err := row.Scan(&item.ID, &item.FullName, &item.Email, &item.LinkedinURL, &item.Location,
		&item.CompanyID, &item.LastContactedAt, &item.IsActive, &item.Status, &item.Ctime, &item.Mtime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Upsert inserts a prospect keyed by email; a second write for the same
// address updates the row in place. FK violations on company_id surface as
// ErrBadReference.
func (r *ProspectRepo) Upsert(ctx context.Context, item *model.Prospect) (*model.Prospect, error) {
	const query = `
		INSERT INTO prospects (full_name, email, linkedin_url, location, company_id,
			last_contacted_at, is_active, status, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			linkedin_url = EXCLUDED.linkedin_url,
			location = EXCLUDED.location,
			company_id = EXCLUDED.company_id,
			last_contacted_at = EXCLUDED.last_contacted_at,
			is_active = EXCLUDED.is_active,
			status = EXCLUDED.status,
			mtime = EXCLUDED.mtime
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query,
		item.FullName, item.Email, item.LinkedinURL, item.Location, item.CompanyID,
		item.LastContactedAt, item.IsActive, item.Status, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *ProspectRepo) GetByID(ctx context.Context, id int64) (*model.Prospect, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("prospects", where, prospectFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.scanOne(r.db.QueryRowContext(ctx, sqlStr, args...))
}

func (r *ProspectRepo) GetByName(ctx context.Context, name string, limit int) ([]model.Prospect, error) {
	where := map[string]interface{}{"full_name": name, "_orderby": "id asc"}
	if limit > 0 {
		where["_limit"] = []uint{0, uint(limit)}
	}
	sqlStr, args, err := builder.BuildSelect("prospects", where, prospectFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.queryMany(ctx, sqlStr, args)
}

func (r *ProspectRepo) List(ctx context.Context) ([]model.Prospect, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("prospects", where, prospectFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return r.queryMany(ctx, sqlStr, args)
}

func (r *ProspectRepo) queryMany(ctx context.Context, sqlStr string, args []interface{}) ([]model.Prospect, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Prospect
	for rows.Next() {
		var item model.Prospect
		if err := rows.Scan(&item.ID, &item.FullName, &item.Email, &item.LinkedinURL, &item.Location,
			&item.CompanyID, &item.LastContactedAt, &item.IsActive, &item.Status, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ProspectRepo) UpdateStatus(ctx context.Context, id int64, status string, now int64) error {
	sqlStr, args, err := builder.BuildUpdate("prospects",
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

func (r *ProspectRepo) TouchLastContacted(ctx context.Context, id int64, when int64) error {
	sqlStr, args, err := builder.BuildUpdate("prospects",
		map[string]interface{}{"id": id},
		map[string]interface{}{"last_contacted_at": when, "mtime": when})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *ProspectRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("prospects", map[string]interface{}{"id": id})
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
