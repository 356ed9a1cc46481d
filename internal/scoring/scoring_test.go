package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScorer struct {
	marks map[string]int
	errs  map[string]error
	calls []string
}

func (f *fakeScorer) Score(_ context.Context, videoURL string) (int, error) {
	f.calls = append(f.calls, videoURL)
	if err, ok := f.errs[videoURL]; ok {
		return 0, err
	}
	return f.marks[videoURL], nil
}

type fakeMarksStore struct {
	interviewID uuid.UUID
	candidateID uuid.UUID
	videoMarks  []int
	marks       *int
	err         error
	updated     bool
}

func (f *fakeMarksStore) UpdateResponseMarks(_ context.Context, interviewID, candidateID uuid.UUID, videoMarks []int, marks *int) error {
	f.interviewID = interviewID
	f.candidateID = candidateID
	f.videoMarks = videoMarks
	f.marks = marks
	f.updated = true
	return f.err
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		marks []int
		want  *int
	}{
		{name: "empty set stays nil", marks: nil, want: nil},
		{name: "single mark", marks: []int{80}, want: intPtr(80)},
		{name: "two marks rounded", marks: []int{80, 90}, want: intPtr(85)},
		{name: "rounds half up", marks: []int{80, 85}, want: intPtr(83)},
		{name: "all zero marks aggregate to zero, not nil", marks: []int{0, 0}, want: intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.marks)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, *tt.want, *got)
		})
	}
}

func TestScoreResponse_AllSucceed(t *testing.T) {
	scorer := &fakeScorer{marks: map[string]int{"a.mp4": 80, "b.mp4": 90}}
	store := &fakeMarksStore{}
	agg := NewAggregator(scorer, store, time.Second, zap.NewNop())

	interviewID, candidateID := uuid.New(), uuid.New()
	agg.ScoreResponse(context.Background(), interviewID, candidateID, []string{"a.mp4", "b.mp4"})

	require.True(t, store.updated)
	require.Equal(t, interviewID, store.interviewID)
	require.Equal(t, candidateID, store.candidateID)
	require.Equal(t, []int{80, 90}, store.videoMarks)
	require.NotNil(t, store.marks)
	require.Equal(t, 85, *store.marks)
}

func TestScoreResponse_PartialFailure(t *testing.T) {
	scorer := &fakeScorer{
		marks: map[string]int{"a.mp4": 80},
		errs:  map[string]error{"b.mp4": errors.New("scorer unavailable")},
	}
	store := &fakeMarksStore{}
	agg := NewAggregator(scorer, store, time.Second, zap.NewNop())

	agg.ScoreResponse(context.Background(), uuid.New(), uuid.New(), []string{"a.mp4", "b.mp4"})

	// one failed video never aborts the others
	require.Equal(t, []string{"a.mp4", "b.mp4"}, scorer.calls)
	require.Equal(t, []int{80}, store.videoMarks)
	require.NotNil(t, store.marks)
	require.Equal(t, 80, *store.marks)
}

func TestScoreResponse_TotalFailureLeavesMarksNil(t *testing.T) {
	scorer := &fakeScorer{errs: map[string]error{
		"a.mp4": errors.New("timeout"),
		"b.mp4": errors.New("timeout"),
	}}
	store := &fakeMarksStore{}
	agg := NewAggregator(scorer, store, time.Second, zap.NewNop())

	agg.ScoreResponse(context.Background(), uuid.New(), uuid.New(), []string{"a.mp4", "b.mp4"})

	require.True(t, store.updated)
	require.Empty(t, store.videoMarks)
	require.Nil(t, store.marks)
}

func intPtr(v int) *int { return &v }
