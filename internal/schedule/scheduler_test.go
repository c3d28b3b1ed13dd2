package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type noopJob struct {
	name string
}

func (j *noopJob) Name() string { return j.name }

func (j *noopJob) Run(ctx context.Context) error { return nil }

func TestAddJobRejectsDuplicateName(t *testing.T) {
	s := NewCronScheduler()
	require.NoError(t, s.AddJob(&noopJob{name: "sync"}, "* * * * *"))
	err := s.AddJob(&noopJob{name: "sync"}, "*/5 * * * *")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestAddJobRejectsBadSpec(t *testing.T) {
	s := NewCronScheduler()
	// 6-field specs with seconds are not accepted
	require.Error(t, s.AddJob(&noopJob{name: "sync"}, "* * * * * *"))
	require.Error(t, s.AddJob(&noopJob{name: "sync"}, "not-a-spec"))
}
