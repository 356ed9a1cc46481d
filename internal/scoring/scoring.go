package scoring

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scorer converts one video answer into a numeric mark. Implemented by
// videoai.Client; faked in tests.
type Scorer interface {
	Score(ctx context.Context, videoURL string) (int, error)
}

// MarksStore applies the targeted marks patch for a single response.
type MarksStore interface {
	UpdateResponseMarks(ctx context.Context, interviewID, candidateID uuid.UUID, videoMarks []int, marks *int) error
}

// Aggregator scores a response's video answers and writes the combined mark.
type Aggregator struct {
	scorer  Scorer
	store   MarksStore
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewAggregator(scorer Scorer, store MarksStore, timeout time.Duration, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		scorer:  scorer,
		store:   store,
		timeout: timeout,
		logger:  logger.Sugar(),
	}
}

// ScoreResponse calls the scorer once per video reference. A failed or
// timed-out call drops that single reference from the mark set; the others
// still count. The aggregate is round(mean) of the collected marks and stays
// nil when nothing was collected, never zero.
func (a *Aggregator) ScoreResponse(ctx context.Context, interviewID, candidateID uuid.UUID, videoRefs []string) {
	marks := make([]int, 0, len(videoRefs))
	for _, ref := range videoRefs {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		mark, err := a.scorer.Score(callCtx, ref)
		cancel()
		if err != nil {
			a.logger.Errorw("video scoring failed",
				"interview_id", interviewID, "candidate_id", candidateID, "video", ref, "err", err)
			continue
		}
		marks = append(marks, mark)
	}

	if err := a.store.UpdateResponseMarks(ctx, interviewID, candidateID, marks, Aggregate(marks)); err != nil {
		a.logger.Errorw("failed to store marks",
			"interview_id", interviewID, "candidate_id", candidateID, "err", err)
	}
}

// Aggregate returns the arithmetic mean rounded to the nearest integer, or
// nil for an empty mark set.
func Aggregate(marks []int) *int {
	if len(marks) == 0 {
		return nil
	}
	sum := 0
	for _, m := range marks {
		sum += m
	}
	avg := int(math.Round(float64(sum) / float64(len(marks))))
	return &avg
}
