package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/prospectry/salescrm/internal/model"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
	"github.com/prospectry/salescrm/internal/pkg/timeutil"
	"github.com/prospectry/salescrm/internal/repo"
)

const outreachWorkflow = "outreach_draft"

// recentInteractionsForPrompt bounds how much history goes into the prompt.
const recentInteractionsForPrompt = 5

type draftGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GeneratorModelName() string
	MaxInputChars() int
}

// OutreachService drafts outreach copy for a prospect with the generator
// model, keeps the drafts for review, and records model usage per call.
type OutreachService struct {
	gen       draftGenerator
	drafts    *repo.OutreachRepo
	usage     *repo.LLMUsageRepo
	prospects *repo.ProspectRepo
	history   *repo.InteractionRepo
	research  *repo.ResearchRepo
	markdown  goldmark.Markdown
}

func NewOutreachService(gen draftGenerator, drafts *repo.OutreachRepo, usage *repo.LLMUsageRepo,
	prospects *repo.ProspectRepo, history *repo.InteractionRepo, research *repo.ResearchRepo) *OutreachService {
	return &OutreachService{
		gen:       gen,
		drafts:    drafts,
		usage:     usage,
		prospects: prospects,
		history:   history,
		research:  research,
		markdown:  goldmark.New(),
	}
}

// truncatePrompt caps the prompt at max bytes without splitting a UTF-8
// sequence. max <= 0 means unlimited.
func truncatePrompt(prompt string, max int) string {
	if max <= 0 || len(prompt) <= max {
		return prompt
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(prompt[cut]) {
		cut--
	}
	return prompt[:cut]
}

func (s *OutreachService) buildPrompt(ctx context.Context, prospect *model.Prospect, draftType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a %s outreach message in markdown for the following prospect.\n\n", draftType)
	fmt.Fprintf(&sb, "Prospect: %s (%s), status %s.\n", prospect.FullName, prospect.Email, prospect.Status)

	notes, err := s.research.ListByProspect(ctx, prospect.ID)
	if err == nil && len(notes) > 0 {
		fmt.Fprintf(&sb, "\nResearch summary: %s\n", notes[0].ResearchSummary)
		for _, insight := range notes[0].KeyInsights {
			fmt.Fprintf(&sb, "- %s\n", insight)
		}
	}
	recent, err := s.history.ListByProspect(ctx, prospect.ID, recentInteractionsForPrompt)
	if err == nil && len(recent) > 0 {
		sb.WriteString("\nRecent interactions, newest first:\n")
		for _, item := range recent {
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", item.InteractionType, item.Subject, item.Outcome)
		}
	}
	sb.WriteString("\nKeep it short, specific and personal. Return only the message body.")
	return sb.String()
}

// Draft generates outreach content for a prospect and stores it in pending
// state. eventID is optional (0 means none).
func (s *OutreachService) Draft(ctx context.Context, prospectID int64, eventID int64, draftType string) (*model.OutreachDraft, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("%w: no generator configured", appErr.ErrInternal)
	}
	prospect, err := s.prospects.GetByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	prompt := truncatePrompt(s.buildPrompt(ctx, prospect, draftType), s.gen.MaxInputChars())

	start := time.Now()
	content, err := s.gen.Generate(ctx, prompt)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return nil, err
	}

	now := timeutil.NowUnix()
	draft := &model.OutreachDraft{
		ProspectID: prospectID,
		EventID:    eventID,
		DraftType:  draftType,
		Content:    content,
		Status:     model.DraftStatusPending,
		Ctime:      now,
		Mtime:      now,
	}
	if draft, err = s.drafts.Create(ctx, draft); err != nil {
		return nil, err
	}
	if err := s.usage.Create(ctx, &model.LLMUsageLog{
		WorkflowName: outreachWorkflow,
		NodeName:     draftType,
		Model:        s.gen.GeneratorModelName(),
		LatencyMs:    latency,
		Ctime:        now,
	}); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *OutreachService) GetDraft(ctx context.Context, id int64) (*model.OutreachDraft, error) {
	return s.drafts.GetByID(ctx, id)
}

func (s *OutreachService) ListDrafts(ctx context.Context, prospectID int64) ([]model.OutreachDraft, error) {
	return s.drafts.ListByProspect(ctx, prospectID)
}

func (s *OutreachService) UpdateDraftStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case model.DraftStatusPending, model.DraftStatusApproved, model.DraftStatusSent, model.DraftStatusRejected:
	default:
		return fmt.Errorf("%w: unknown draft status %q", appErr.ErrInvalid, status)
	}
	return s.drafts.UpdateStatus(ctx, id, status, timeutil.NowUnix())
}

func (s *OutreachService) DeleteDraft(ctx context.Context, id int64) error {
	return s.drafts.Delete(ctx, id)
}

// PreviewDraft renders the stored markdown content as HTML.
func (s *OutreachService) PreviewDraft(ctx context.Context, id int64) (string, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(draft.Content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *OutreachService) ListUsage(ctx context.Context, limit int) ([]model.LLMUsageLog, error) {
	return s.usage.ListByWorkflow(ctx, outreachWorkflow, limit)
}
