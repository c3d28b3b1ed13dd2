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

func TestSolutionRepoUpsertMerges(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()

	solutions := repo.NewSolutionRepo(db)
	name := fmt.Sprintf("upsert-merge-%d", timeutil.NowMilli())

	first, err := solutions.Upsert(ctx, &model.Solution{
		Name:        name,
		Category:    "compute",
		Description: "first version",
		Ctime:       now, Mtime: now,
	})
	require.NoError(t, err)

	second, err := solutions.Upsert(ctx, &model.Solution{
		Name:        name,
		Category:    "compute",
		Description: "second version",
		Keywords:    []string{"updated"},
		Ctime:       now, Mtime: now + 1,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	got, err := solutions.GetByName(ctx, name)
	require.NoError(t, err)
	require.Equal(t, "second version", got.Description)
	require.Equal(t, []string{"updated"}, got.Keywords)

	require.NoError(t, solutions.Delete(ctx, first.ID))
	require.ErrorIs(t, solutions.Delete(ctx, first.ID), appErr.ErrNotFound)
}

func TestProspectRepoUpsertByEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	now := timeutil.NowUnix()
	suffix := timeutil.NowMilli()

	industries := repo.NewIndustryRepo(db)
	companies := repo.NewCompanyRepo(db)
	prospects := repo.NewProspectRepo(db)

	industry, err := industries.Upsert(ctx, &model.Industry{
		Name: fmt.Sprintf("pr-industry-%d", suffix), Ctime: now, Mtime: now,
	})
	require.NoError(t, err)
	company, err := companies.Upsert(ctx, &model.Company{
		Name: fmt.Sprintf("pr-company-%d", suffix), IndustryID: industry.ID, Ctime: now, Mtime: now,
	})
	require.NoError(t, err)

	email := fmt.Sprintf("upsert-%d@example.com", suffix)
	first, err := prospects.Upsert(ctx, &model.Prospect{
		FullName:  "Ada Example",
		Email:     email,
		CompanyID: company.ID,
		IsActive:  true,
		Status:    model.ProspectStatusNew,
		Ctime:     now, Mtime: now,
	})
	require.NoError(t, err)

	second, err := prospects.Upsert(ctx, &model.Prospect{
		FullName:  "Ada Example Updated",
		Email:     email,
		CompanyID: company.ID,
		IsActive:  true,
		Status:    model.ProspectStatusContacted,
		Ctime:     now, Mtime: now + 1,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	got, err := prospects.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada Example Updated", got.FullName)
	require.Equal(t, model.ProspectStatusContacted, got.Status)

	matches, err := prospects.GetByName(ctx, "Ada Example Updated", 10)
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	require.NoError(t, prospects.Delete(ctx, first.ID))
	require.NoError(t, companies.Delete(ctx, company.ID))
	require.NoError(t, industries.Delete(ctx, industry.ID))
}

func TestCompanyRepoBadIndustryReference(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	companies := repo.NewCompanyRepo(db)
	_, err := companies.Upsert(context.Background(), &model.Company{
		Name:       fmt.Sprintf("bad-ref-%d", timeutil.NowMilli()),
		IndustryID: -999999,
	})
	require.ErrorIs(t, err, appErr.ErrBadReference)
}
