package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

var eventFields = []string{
	"id", "event_type", "event_date", "description", "location",
	"target_industries", "target_roles", "solutions_featured", "status", "ctime", "mtime",
}

func scanEvent(scan func(dest ...interface{}) error) (*model.Event, error) {
	var item model.Event
	var industries, roles, solutions []byte
	err := scan(&item.ID, &item.EventType, &item.EventDate, &item.Description, &item.Location,
		&industries, &roles, &solutions, &item.Status, &item.Ctime, &item.Mtime)
	if err != nil {
		return nil, err
	}
	if item.TargetIndustries, err = unmarshalStringList(industries); err != nil {
		return nil, err
	}
	if item.TargetRoles, err = unmarshalStringList(roles); err != nil {
		return nil, err
	}
	if item.SolutionsFeatured, err = unmarshalStringList(solutions); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *EventRepo) Create(ctx context.Context, item *model.Event) (*model.Event, error) {
	industries, err := marshalStringList(item.TargetIndustries)
	if err != nil {
		return nil, err
	}
	roles, err := marshalStringList(item.TargetRoles)
	if err != nil {
		return nil, err
	}
	solutions, err := marshalStringList(item.SolutionsFeatured)
	if err != nil {
		return nil, err
	}
	const query = `
		INSERT INTO events (event_type, event_date, description, location,
			target_industries, target_roles, solutions_featured, status, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	row := r.db.QueryRowContext(ctx, query,
		item.EventType, item.EventDate, item.Description, item.Location,
		industries, roles, solutions, item.Status, item.Ctime, item.Mtime)
	if err := row.Scan(&item.ID); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("events", where, eventFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	row := r.db.QueryRowContext(ctx, sqlStr, args...)
	item, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	return item, err
}

func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	where := map[string]interface{}{"_orderby": "event_date desc"}
	sqlStr, args, err := builder.BuildSelect("events", where, eventFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Event
	for rows.Next() {
		item, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("events", map[string]interface{}{"id": id})
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
