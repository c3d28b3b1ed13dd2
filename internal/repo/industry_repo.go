package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type IndustryRepo struct {
	db *sql.DB
}

func NewIndustryRepo(db *sql.DB) *IndustryRepo {
	return &IndustryRepo{db: db}
}

// Upsert inserts the industry or, on a name collision, refreshes the existing
// row. One statement, no read-modify-write.
func (r *IndustryRepo) Upsert(ctx context.Context, item *model.Industry) (*model.Industry, error) {
	const query = `
		INSERT INTO industries (name, ctime, mtime)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET mtime = EXCLUDED.mtime
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query, item.Name, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *IndustryRepo) GetByID(ctx context.Context, id int64) (*model.Industry, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("industries", where, []string{"id", "name", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	var item model.Industry
	if err := row.Scan(&item.ID, &item.Name, &item.Ctime, &item.Mtime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *IndustryRepo) List(ctx context.Context) ([]model.Industry, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("industries", where, []string{"id", "name", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Industry
	for rows.Next() {
		var item model.Industry
		if err := rows.Scan(&item.ID, &item.Name, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *IndustryRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("industries", map[string]interface{}{"id": id})
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

// LinkSolution records that a solution is sold into an industry. Re-linking
// an existing pair is a no-op.
func (r *IndustryRepo) LinkSolution(ctx context.Context, industryID, solutionID, now int64) error {
	const query = `
		INSERT INTO industry_solutions (industry_id, solution_id, ctime)
		VALUES ($1, $2, $3)
		ON CONFLICT (industry_id, solution_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, industryID, solutionID, now)
	if dbutil.IsForeignKeyViolation(err) {
		return appErr.ErrBadReference
	}
	return err
}

func (r *IndustryRepo) UnlinkSolution(ctx context.Context, industryID, solutionID int64) error {
	sqlStr, args, err := builder.BuildDelete("industry_solutions", map[string]interface{}{
		"industry_id": industryID,
		"solution_id": solutionID,
	})
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

func (r *IndustryRepo) ListSolutionIDs(ctx context.Context, industryID int64) ([]int64, error) {
	where := map[string]interface{}{"industry_id": industryID, "_orderby": "solution_id asc"}
	sqlStr, args, err := builder.BuildSelect("industry_solutions", where, []string{"solution_id"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
