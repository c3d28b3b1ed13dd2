package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type SolutionRepo struct {
	db *sql.DB
}

func NewSolutionRepo(db *sql.DB) *SolutionRepo {
	return &SolutionRepo{db: db}
}

var solutionFields = []string{
	"id", "name", "category", "description", "use_cases", "keywords",
	"pricing_model", "ctime", "mtime",
}

func scanSolution(scan func(dest ...interface{}) error) (*model.Solution, error) {
	var item model.Solution
	var useCases, keywords []byte
	err := scan(&item.ID, &item.Name, &item.Category, &item.Description,
		&useCases, &keywords, &item.PricingModel, &item.Ctime, &item.Mtime)
	if err != nil {
		return nil, err
	}
	if item.UseCases, err = unmarshalStringList(useCases); err != nil {
		return nil, err
	}
	if item.Keywords, err = unmarshalStringList(keywords); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SolutionRepo) Upsert(ctx context.Context, item *model.Solution) (*model.Solution, error) {
	useCases, err := marshalStringList(item.UseCases)
	if err != nil {
		return nil, err
	}
	keywords, err := marshalStringList(item.Keywords)
	if err != nil {
		return nil, err
	}
	const query = `
		INSERT INTO solutions (name, category, description, use_cases, keywords, pricing_model, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			use_cases = EXCLUDED.use_cases,
			keywords = EXCLUDED.keywords,
			pricing_model = EXCLUDED.pricing_model,
			mtime = EXCLUDED.mtime
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query,
		item.Name, item.Category, item.Description, useCases, keywords,
		item.PricingModel, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *SolutionRepo) GetByID(ctx context.Context, id int64) (*model.Solution, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("solutions", where, solutionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanSolution(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *SolutionRepo) GetByName(ctx context.Context, name string) (*model.Solution, error) {
	where := map[string]interface{}{"name": name}
	sqlStr, args, err := builder.BuildSelect("solutions", where, solutionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanSolution(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *SolutionRepo) List(ctx context.Context) ([]model.Solution, error) {
	return r.listWhere(ctx, map[string]interface{}{"_orderby": "id asc"})
}

func (r *SolutionRepo) ListByCategory(ctx context.Context, category string) ([]model.Solution, error) {
	return r.listWhere(ctx, map[string]interface{}{"category": category, "_orderby": "id asc"})
}

func (r *SolutionRepo) listWhere(ctx context.Context, where map[string]interface{}) ([]model.Solution, error) {
	sqlStr, args, err := builder.BuildSelect("solutions", where, solutionFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Solution
	for rows.Next() {
		item, err := scanSolution(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *SolutionRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("solutions", map[string]interface{}{"id": id})
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

// ListMissingVectors returns solutions that have no vector rows yet, for the
// background sync job.
func (r *SolutionRepo) ListMissingVectors(ctx context.Context, limit int) ([]model.Solution, error) {
	const query = `
		SELECT s.id, s.name, s.category, s.description, s.use_cases, s.keywords,
			s.pricing_model, s.ctime, s.mtime
		FROM solutions s
		LEFT JOIN solution_vectors v ON s.id = v.solution_id
		WHERE v.id IS NULL
		ORDER BY s.id ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Solution
	for rows.Next() {
		item, err := scanSolution(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
