package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

var companyFields = []string{"id", "name", "industry_id", "size", "website", "ctime", "mtime"}

func (r *CompanyRepo) Upsert(ctx context.Context, item *model.Company) (*model.Company, error) {
	const query = `
		INSERT INTO companies (name, industry_id, size, website, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			industry_id = EXCLUDED.industry_id,
			size = EXCLUDED.size,
			website = EXCLUDED.website,
			mtime = EXCLUDED.mtime
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query,
		item.Name, item.IndustryID, item.Size, item.Website, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("companies", where, companyFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var item model.Company
	if err := row.Scan(&item.ID, &item.Name, &item.IndustryID, &item.Size, &item.Website, &item.Ctime, &item.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	where := map[string]interface{}{"name": name}
	sqlStr, args, err := builder.BuildSelect("companies", where, companyFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var item model.Company
	if err := row.Scan(&item.ID, &item.Name, &item.IndustryID, &item.Size, &item.Website, &item.Ctime, &item.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CompanyRepo) List(ctx context.Context) ([]model.Company, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("companies", where, companyFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Company
	for rows.Next() {
		var item model.Company
		if err := rows.Scan(&item.ID, &item.Name, &item.IndustryID, &item.Size, &item.Website, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("companies", map[string]interface{}{"id": id})
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
