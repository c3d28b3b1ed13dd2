package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prospectry/salescrm/internal/model"
	appErr "github.com/prospectry/salescrm/internal/pkg/errors"
	"github.com/prospectry/salescrm/internal/pkg/timeutil"
	"github.com/prospectry/salescrm/internal/repo"
	"github.com/prospectry/salescrm/test/testutil"
)

func testEmbedding(seed float32) []float32 {
	out := make([]float32, 384)
	for i := range out {
		out[i] = seed + float32(i)*0.25
	}
	return out
}

func TestSolutionVectorRepoCRUD(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()

	solutions := repo.NewSolutionRepo(db)
	vectors := repo.NewSolutionVectorRepo(db)

	solution, err := solutions.Upsert(ctx, &model.Solution{
		Name:        fmt.Sprintf("vec-crud-%d", timeutil.NowMilli()),
		Category:    "analytics",
		Description: "usage analytics and cost reporting",
		Keywords:    []string{"analytics", "cost"},
		Ctime:       now,
		Mtime:       now,
	})
	require.NoError(t, err)

	created, err := vectors.Create(ctx, solution.ID, testEmbedding(1))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, solution.ID, created.SolutionID)

	got, err := vectors.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, solution.ID, got.SolutionID)
	require.Len(t, got.Embedding, 384)
	require.Equal(t, testEmbedding(1), got.Embedding)

	updated, err := vectors.UpdateEmbedding(ctx, created.ID, testEmbedding(2))
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, solution.ID, updated.SolutionID)

	got, err = vectors.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, testEmbedding(2), got.Embedding)

	deleted, err := vectors.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = vectors.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = vectors.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, solutions.Delete(ctx, solution.ID))
}

func TestSolutionVectorRepoBadParent(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	vectors := repo.NewSolutionVectorRepo(db)
	_, err := vectors.Create(context.Background(), -12345, testEmbedding(1))
	require.ErrorIs(t, err, appErr.ErrBadReference)
}

func TestSolutionVectorRepoUpdateMissing(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	vectors := repo.NewSolutionVectorRepo(db)
	_, err := vectors.UpdateEmbedding(context.Background(), -1, testEmbedding(1))
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestSolutionVectorRepoListCandidatesFilters(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()

	solutions := repo.NewSolutionRepo(db)
	vectors := repo.NewSolutionVectorRepo(db)

	suffix := timeutil.NowMilli()
	category := fmt.Sprintf("cat-%d", suffix)
	inCat, err := solutions.Upsert(ctx, &model.Solution{
		Name:        fmt.Sprintf("filter-match-%d", suffix),
		Category:    category,
		Description: "serverless compute savings",
		Ctime:       now, Mtime: now,
	})
	require.NoError(t, err)
	outCat, err := solutions.Upsert(ctx, &model.Solution{
		Name:        fmt.Sprintf("filter-other-%d", suffix),
		Category:    "other",
		Description: "unrelated product",
		Ctime:       now, Mtime: now,
	})
	require.NoError(t, err)

	_, err = vectors.Create(ctx, inCat.ID, testEmbedding(1))
	require.NoError(t, err)
	_, err = vectors.Create(ctx, outCat.ID, testEmbedding(2))
	require.NoError(t, err)

	byCategory, err := vectors.ListCandidates(ctx, category, nil)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, inCat.ID, byCategory[0].SolutionID)

	// keywords are any-of, case-insensitive substring over name+description
	byKeyword, err := vectors.ListCandidates(ctx, category, []string{"SERVERLESS", "nomatch"})
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)

	none, err := vectors.ListCandidates(ctx, category, []string{"zzz-does-not-exist"})
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = vectors.DeleteByParent(ctx, inCat.ID)
	require.NoError(t, err)
	_, err = vectors.DeleteByParent(ctx, outCat.ID)
	require.NoError(t, err)
	require.NoError(t, solutions.Delete(ctx, inCat.ID))
	require.NoError(t, solutions.Delete(ctx, outCat.ID))
}

func TestInteractionVectorRepoCRUD(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()
	suffix := timeutil.NowMilli()

	industries := repo.NewIndustryRepo(db)
	companies := repo.NewCompanyRepo(db)
	prospects := repo.NewProspectRepo(db)
	interactions := repo.NewInteractionRepo(db)
	vectors := repo.NewInteractionVectorRepo(db)

	industry, err := industries.Upsert(ctx, &model.Industry{
		Name: fmt.Sprintf("ivec-industry-%d", suffix), Ctime: now, Mtime: now,
	})
	require.NoError(t, err)
	company, err := companies.Upsert(ctx, &model.Company{
		Name: fmt.Sprintf("ivec-company-%d", suffix), IndustryID: industry.ID, Ctime: now, Mtime: now,
	})
	require.NoError(t, err)
	prospect, err := prospects.Upsert(ctx, &model.Prospect{
		FullName: "Vector Test",
		Email:    fmt.Sprintf("ivec-%d@example.com", suffix),
		CompanyID: company.ID,
		IsActive:  true,
		Status:    model.ProspectStatusNew,
		Ctime:     now, Mtime: now,
	})
	require.NoError(t, err)
	interaction, err := interactions.Create(ctx, &model.Interaction{
		ProspectID:      prospect.ID,
		InteractionType: model.InteractionTypeEmail,
		InteractionDate: now,
		Subject:         "pricing discussion",
		Content:         "asked about savings plans for compute",
		Ctime:           now, Mtime: now,
	})
	require.NoError(t, err)

	created, err := vectors.Create(ctx, interaction.ID, testEmbedding(3))
	require.NoError(t, err)
	require.Equal(t, interaction.ID, created.InteractionID)

	got, err := vectors.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, testEmbedding(3), got.Embedding)

	// scoped to the right prospect plus type and keyword filters
	candidates, err := vectors.ListCandidates(ctx, prospect.ID, model.InteractionTypeEmail, []string{"SAVINGS"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	candidates, err = vectors.ListCandidates(ctx, prospect.ID, model.InteractionTypeCall, nil)
	require.NoError(t, err)
	require.Empty(t, candidates)

	candidates, err = vectors.ListCandidates(ctx, prospect.ID+1000000, "", nil)
	require.NoError(t, err)
	require.Empty(t, candidates)

	deleted, err := vectors.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	require.NoError(t, interactions.Delete(ctx, interaction.ID))
	require.NoError(t, prospects.Delete(ctx, prospect.ID))
	require.NoError(t, companies.Delete(ctx, company.ID))
	require.NoError(t, industries.Delete(ctx, industry.ID))
}
