package intake

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	assigned  bool
	responses map[string]*model.Response
}

func newFakeStore(assigned bool) *fakeStore {
	return &fakeStore{assigned: assigned, responses: make(map[string]*model.Response)}
}

func respKey(interviewID, candidateID uuid.UUID) string {
	return interviewID.String() + "/" + candidateID.String()
}

func (f *fakeStore) IsCandidateAssigned(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.assigned, nil
}

func (f *fakeStore) HasResponse(_ context.Context, interviewID, candidateID uuid.UUID) (bool, error) {
	_, ok := f.responses[respKey(interviewID, candidateID)]
	return ok, nil
}

func (f *fakeStore) InsertResponse(_ context.Context, resp *model.Response) error {
	key := respKey(resp.InterviewID, resp.CandidateID)
	if _, ok := f.responses[key]; ok {
		return fmt.Errorf("%w: interview %s", model.ErrDuplicateSubmission, resp.InterviewID)
	}
	cp := *resp
	f.responses[key] = &cp
	return nil
}

type fakeArtifacts struct {
	fail bool
	n    int
}

func (f *fakeArtifacts) Store(_ context.Context, filename string, _ []byte, _ string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("%w: upload failed", model.ErrUpstream)
	}
	f.n++
	return "https://media.example.com/video/upload/" + filename, nil
}

type recordingScorer struct {
	mu   sync.Mutex
	refs []string
	done chan struct{}
}

func (r *recordingScorer) ScoreResponse(_ context.Context, _, _ uuid.UUID, videoRefs []string) {
	r.mu.Lock()
	r.refs = videoRefs
	r.mu.Unlock()
	close(r.done)
}

func TestSubmit_TextOnly(t *testing.T) {
	store := newFakeStore(true)
	scorer := &recordingScorer{done: make(chan struct{})}
	p := NewPipeline(store, &fakeArtifacts{}, scorer, zap.NewNop())

	interviewID, candidateID := uuid.New(), uuid.New()
	resp, err := p.Submit(context.Background(), interviewID, candidateID, []string{"It calls itself"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"It calls itself"}, resp.Answers)
	require.Empty(t, resp.VideoMarks)
	require.Nil(t, resp.Marks)

	// no videos, so the scorer must never run
	select {
	case <-scorer.done:
		t.Fatal("scorer invoked for a text-only submission")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmit_DuplicateRejectedAndFirstKept(t *testing.T) {
	store := newFakeStore(true)
	p := NewPipeline(store, &fakeArtifacts{}, &recordingScorer{done: make(chan struct{})}, zap.NewNop())

	interviewID, candidateID := uuid.New(), uuid.New()
	first, err := p.Submit(context.Background(), interviewID, candidateID, []string{"first answer"}, nil)
	require.NoError(t, err)

	_, err = p.Submit(context.Background(), interviewID, candidateID, []string{"second answer"}, nil)
	require.ErrorIs(t, err, model.ErrDuplicateSubmission)

	stored := store.responses[respKey(interviewID, candidateID)]
	require.Equal(t, first.Answers, stored.Answers)
}

func TestSubmit_NotAssigned(t *testing.T) {
	p := NewPipeline(newFakeStore(false), &fakeArtifacts{}, &recordingScorer{done: make(chan struct{})}, zap.NewNop())

	_, err := p.Submit(context.Background(), uuid.New(), uuid.New(), []string{"hi"}, nil)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestSubmit_FilesPrecedeAnswersAndVideosAreScored(t *testing.T) {
	store := newFakeStore(true)
	scorer := &recordingScorer{done: make(chan struct{})}
	p := NewPipeline(store, &fakeArtifacts{}, scorer, zap.NewNop())

	files := []FileUpload{{Filename: "answer1.webm", ContentType: "video/webm", Data: []byte("x")}}
	answers := []string{"", "undefined", "a text answer", "https://media.example.com/video/upload/clip.mp4"}

	resp, err := p.Submit(context.Background(), uuid.New(), uuid.New(), answers, files)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://media.example.com/video/upload/answer1.webm",
		"a text answer",
		"https://media.example.com/video/upload/clip.mp4",
	}, resp.Answers)

	select {
	case <-scorer.done:
	case <-time.After(time.Second):
		t.Fatal("scorer was not invoked")
	}
	require.Equal(t, []string{
		"https://media.example.com/video/upload/answer1.webm",
		"https://media.example.com/video/upload/clip.mp4",
	}, scorer.refs)
}

func TestSubmit_ArtifactFailureFailsSubmission(t *testing.T) {
	store := newFakeStore(true)
	p := NewPipeline(store, &fakeArtifacts{fail: true}, &recordingScorer{done: make(chan struct{})}, zap.NewNop())

	interviewID, candidateID := uuid.New(), uuid.New()
	_, err := p.Submit(context.Background(), interviewID, candidateID, []string{"text"},
		[]FileUpload{{Filename: "a.pdf", Data: []byte("x")}})
	require.ErrorIs(t, err, model.ErrUpstream)

	// nothing was persisted
	exists, _ := store.HasResponse(context.Background(), interviewID, candidateID)
	require.False(t, exists)
}

func TestIsVideoRef(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"https://media.example.com/video/upload/abc.mp4", true},
		{"https://media.example.com/raw/upload/clip.webm", true},
		{"https://media.example.com/video/upload/abc", true},
		{"https://media.example.com/image/upload/photo.png", false},
		{"plain text answer", false},
		{"https://example.com/resume.pdf", false},
		{"not a url but mentions video/", false},
		{"", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsVideoRef(tt.answer), "answer %q", tt.answer)
	}
}
