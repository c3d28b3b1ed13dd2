package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type ResearchRepo struct {
	db *sql.DB
}

func NewResearchRepo(db *sql.DB) *ResearchRepo {
	return &ResearchRepo{db: db}
}

var researchFields = []string{
	"id", "prospect_id", "research_summary", "key_insights",
	"recommended_solutions", "confidence_score", "ctime", "mtime",
}

func scanResearch(scan func(dest ...interface{}) error) (*model.ProspectResearch, error) {
	var item model.ProspectResearch
	var insights, solutions []byte
	err := scan(&item.ID, &item.ProspectID, &item.ResearchSummary,
		&insights, &solutions, &item.ConfidenceScore, &item.Ctime, &item.Mtime)
	if err != nil {
		return nil, err
	}
	if item.KeyInsights, err = unmarshalStringList(insights); err != nil {
		return nil, err
	}
	if item.RecommendedSolutions, err = unmarshalStringList(solutions); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ResearchRepo) Create(ctx context.Context, item *model.ProspectResearch) (*model.ProspectResearch, error) {
	insights, err := marshalStringList(item.KeyInsights)
	if err != nil {
		return nil, err
	}
	solutions, err := marshalStringList(item.RecommendedSolutions)
	if err != nil {
		return nil, err
	}
	const query = `
		INSERT INTO prospect_research (prospect_id, research_summary, key_insights,
			recommended_solutions, confidence_score, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query,
		item.ProspectID, item.ResearchSummary, insights, solutions,
		item.ConfidenceScore, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return nil, appErr.ErrBadReference
		}
		return nil, err
	}
	return item, nil
}

func (r *ResearchRepo) GetByID(ctx context.Context, id int64) (*model.ProspectResearch, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("prospect_research", where, researchFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanResearch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *ResearchRepo) ListByProspect(ctx context.Context, prospectID int64) ([]model.ProspectResearch, error) {
	where := map[string]interface{}{"prospect_id": prospectID, "_orderby": "id desc"}
	sqlStr, args, err := builder.BuildSelect("prospect_research", where, researchFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.ProspectResearch
	for rows.Next() {
		item, err := scanResearch(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *ResearchRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("prospect_research", map[string]interface{}{"id": id})
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
