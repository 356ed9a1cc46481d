package repository

import (
	"context"
	"fmt"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
)

// InsertResponse persists a candidate's submission. The uniqueness invariant
// (at most one response per candidate per interview) is enforced by the
// store's primary key, not by a read-then-write, so concurrent duplicate
// submissions cannot both land: the loser's insert affects zero rows and is
// reported as a duplicate without touching the first response.
func (r *Repository) InsertResponse(ctx context.Context, resp *model.Response) error {
	const q = `
INSERT INTO responses (interview_id, candidate_id, answers, video_marks, marks, submitted_at)
VALUES ($1, $2, $3, '{}', NULL, now())
ON CONFLICT (interview_id, candidate_id) DO NOTHING
`
	tag, err := r.db.Exec(ctx, q, resp.InterviewID, resp.CandidateID, resp.Answers)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: interview %s", model.ErrDuplicateSubmission, resp.InterviewID)
	}
	return nil
}

// HasResponse reports whether the candidate already submitted. The intake
// pipeline uses it as a cheap pre-check before uploading artifacts; the
// conflict clause in InsertResponse remains the authoritative guard.
func (r *Repository) HasResponse(ctx context.Context, interviewID, candidateID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM responses WHERE interview_id = $1 AND candidate_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, interviewID, candidateID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check response: %w", err)
	}
	return exists, nil
}

// UpdateResponseMarks is a targeted patch keyed by interview and candidate,
// so responses of different candidates on the same interview can be scored
// concurrently without lost updates.
func (r *Repository) UpdateResponseMarks(ctx context.Context, interviewID, candidateID uuid.UUID, videoMarks []int, marks *int) error {
	const q = `
UPDATE responses SET video_marks = $1, marks = $2
WHERE interview_id = $3 AND candidate_id = $4
`
	tag, err := r.db.Exec(ctx, q, videoMarks, marks, interviewID, candidateID)
	if err != nil {
		return fmt.Errorf("update response marks: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: response", model.ErrNotFound)
	}
	return nil
}

func (r *Repository) ListResponses(ctx context.Context, interviewID uuid.UUID) ([]model.Response, error) {
	const q = `
SELECT interview_id, candidate_id, answers, video_marks, marks, submitted_at
FROM responses WHERE interview_id = $1 ORDER BY submitted_at
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []model.Response
	for rows.Next() {
		var resp model.Response
		if err := rows.Scan(&resp.InterviewID, &resp.CandidateID, &resp.Answers, &resp.VideoMarks, &resp.Marks, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan response row: %w", err)
		}
		out = append(out, resp)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
