package intake

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the slice of the interview store the pipeline needs.
type Store interface {
	IsCandidateAssigned(ctx context.Context, interviewID, candidateID uuid.UUID) (bool, error)
	HasResponse(ctx context.Context, interviewID, candidateID uuid.UUID) (bool, error)
	InsertResponse(ctx context.Context, resp *model.Response) error
}

// ArtifactStore durably stores an uploaded file and returns its locator.
type ArtifactStore interface {
	Store(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

// ResponseScorer receives the video references of a persisted response.
type ResponseScorer interface {
	ScoreResponse(ctx context.Context, interviewID, candidateID uuid.UUID, videoRefs []string)
}

// FileUpload is one uploaded answer file.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pipeline accepts and persists a candidate's submission exactly once.
// Persistence never waits on scoring: by the time Submit returns, the
// response is stored with empty marks, and scoring runs behind it.
type Pipeline struct {
	store     Store
	artifacts ArtifactStore
	scorer    ResponseScorer
	logger    *zap.SugaredLogger
}

func NewPipeline(store Store, artifacts ArtifactStore, scorer ResponseScorer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		store:     store,
		artifacts: artifacts,
		scorer:    scorer,
		logger:    logger.Sugar(),
	}
}

// Submit stores the uploaded files, persists the combined answer sequence in
// input order (files first, then form answers), and hands any video
// references to the scorer asynchronously. A duplicate submission is rejected
// without touching the existing response.
func (p *Pipeline) Submit(ctx context.Context, interviewID, candidateID uuid.UUID, answers []string, files []FileUpload) (*model.Response, error) {
	assigned, err := p.store.IsCandidateAssigned(ctx, interviewID, candidateID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, fmt.Errorf("%w: candidate is not assigned to this interview", model.ErrForbidden)
	}

	// Cheap duplicate pre-check so artifacts are not uploaded for a doomed
	// submission. The insert's conflict clause is the authoritative guard.
	if exists, err := p.store.HasResponse(ctx, interviewID, candidateID); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: interview %s", model.ErrDuplicateSubmission, interviewID)
	}

	processed := make([]string, 0, len(files)+len(answers))
	for _, f := range files {
		locator, err := p.artifacts.Store(ctx, f.Filename, f.Data, f.ContentType)
		if err != nil {
			// Without its artifact an answer cannot be recorded, so the
			// whole submission fails.
			return nil, fmt.Errorf("store artifact %q: %w", f.Filename, err)
		}
		processed = append(processed, locator)
	}
	for _, a := range answers {
		a = strings.TrimSpace(a)
		if a == "" || a == "undefined" {
			continue
		}
		processed = append(processed, a)
	}

	resp := &model.Response{
		InterviewID: interviewID,
		CandidateID: candidateID,
		Answers:     processed,
		VideoMarks:  []int{},
	}
	if err := p.store.InsertResponse(ctx, resp); err != nil {
		return nil, err
	}

	videoRefs := FilterVideoRefs(processed)
	if len(videoRefs) > 0 {
		p.logger.Infow("queueing video scoring",
			"interview_id", interviewID, "candidate_id", candidateID, "videos", len(videoRefs))
		// Detached from the request context: the caller has their answer
		// persisted whether or not scoring ever finishes.
		go p.scorer.ScoreResponse(context.Background(), interviewID, candidateID, videoRefs)
	}
	return resp, nil
}

var videoExtensions = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".mkv": true, ".avi": true,
}

// IsVideoRef recognizes answers that reference a video artifact: an http(s)
// URL with a video file extension or a /video/ path segment (the media
// store's resource-type convention).
func IsVideoRef(answer string) bool {
	u, err := url.Parse(answer)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	path := strings.ToLower(u.Path)
	if strings.Contains(path, "/video/") {
		return true
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return videoExtensions[path[i:]]
	}
	return false
}

// FilterVideoRefs keeps the video references in order.
func FilterVideoRefs(answers []string) []string {
	var refs []string
	for _, a := range answers {
		if IsVideoRef(a) {
			refs = append(refs, a)
		}
	}
	return refs
}
