package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/prospectry/salescrm/internal/model"
	"github.com/prospectry/salescrm/internal/pkg/dbutil"
)

type LLMUsageRepo struct {
	db *sql.DB
}

func NewLLMUsageRepo(db *sql.DB) *LLMUsageRepo {
	return &LLMUsageRepo{db: db}
}

func (r *LLMUsageRepo) Create(ctx context.Context, item *model.LLMUsageLog) error {
	data := map[string]interface{}{
		"workflow_name":     item.WorkflowName,
		"node_name":         item.NodeName,
		"model":             item.Model,
		"prompt_tokens":     item.PromptTokens,
		"completion_tokens": item.CompletionTokens,
		"total_tokens":      item.TotalTokens,
		"latency_ms":        item.LatencyMs,
		"cost":              item.Cost,
		"ctime":             item.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("llm_usage_logs", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *LLMUsageRepo) ListByWorkflow(ctx context.Context, workflow string, limit int) ([]model.LLMUsageLog, error) {
	where := map[string]interface{}{"workflow_name": workflow, "_orderby": "id desc"}
	if limit > 0 {
		where["_limit"] = []uint{0, uint(limit)}
	}
	fields := []string{"id", "workflow_name", "node_name", "model", "prompt_tokens",
		"completion_tokens", "total_tokens", "latency_ms", "cost", "ctime"}
	sqlStr, args, err := builder.BuildSelect("llm_usage_logs", where, fields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.LLMUsageLog
	for rows.Next() {
		var item model.LLMUsageLog
		if err := rows.Scan(&item.ID, &item.WorkflowName, &item.NodeName, &item.Model,
			&item.PromptTokens, &item.CompletionTokens, &item.TotalTokens,
			&item.LatencyMs, &item.Cost, &item.Ctime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
