package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateInterview persists the interview, its questions and the deduplicated
// candidate assignments in one transaction. Responses start empty.
func (r *Repository) CreateInterview(ctx context.Context, iv *model.Interview, questions []model.QuestionInput, candidateIDs []uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO interviews (interview_id, recruiter_id, title, description, scheduled_at, answer_duration_secs, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
`
		if _, err := tx.Exec(ctx, q, id, iv.RecruiterID, iv.Title, iv.Description, iv.ScheduledAt, iv.AnswerDuration); err != nil {
			return fmt.Errorf("insert interview: %w", err)
		}

		if err := insertQuestions(ctx, tx, id, questions); err != nil {
			return err
		}
		return insertCandidates(ctx, tx, id, candidateIDs)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func insertQuestions(ctx context.Context, tx pgx.Tx, interviewID uuid.UUID, questions []model.QuestionInput) error {
	if len(questions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const q = `INSERT INTO questions (interview_id, text, answer_kind, position) VALUES ($1, $2, $3, $4)`
	for i, question := range questions {
		batch.Queue(q, interviewID, question.Text, question.AnswerKind, i)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < len(questions); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch insert question %d: %w", i, err)
		}
	}
	return nil
}

// insertCandidates is idempotent: already-assigned ids are skipped by the
// primary-key conflict clause, which is also what deduplicates the input.
func insertCandidates(ctx context.Context, tx pgx.Tx, interviewID uuid.UUID, candidateIDs []uuid.UUID) error {
	if len(candidateIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	const q = `INSERT INTO interview_candidates (interview_id, candidate_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, cid := range candidateIDs {
		batch.Queue(q, interviewID, cid)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < len(candidateIDs); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch assign candidate %d: %w", i, err)
		}
	}
	return nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, id uuid.UUID) (*model.Interview, error) {
	const q = `
SELECT interview_id, recruiter_id, title, description, scheduled_at, answer_duration_secs, created_at
FROM interviews WHERE interview_id = $1
`
	var iv model.Interview
	row := r.db.QueryRow(ctx, q, id)
	err := row.Scan(&iv.InterviewID, &iv.RecruiterID, &iv.Title, &iv.Description, &iv.ScheduledAt, &iv.AnswerDuration, &iv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: interview", model.ErrNotFound)
		}
		return nil, fmt.Errorf("scan interview: %w", err)
	}

	iv.Questions, err = r.listQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	iv.Candidates, err = r.listCandidates(ctx, id)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *Repository) listQuestions(ctx context.Context, interviewID uuid.UUID) ([]model.Question, error) {
	const q = `
SELECT q_id, interview_id, text, answer_kind, position
FROM questions WHERE interview_id = $1 ORDER BY position
`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		var qu model.Question
		if err := rows.Scan(&qu.QID, &qu.InterviewID, &qu.Text, &qu.AnswerKind, &qu.Position); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		out = append(out, qu)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) listCandidates(ctx context.Context, interviewID uuid.UUID) ([]uuid.UUID, error) {
	const q = `SELECT candidate_id FROM interview_candidates WHERE interview_id = $1 ORDER BY candidate_id`
	rows, err := r.db.Query(ctx, q, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var cid uuid.UUID
		if err := rows.Scan(&cid); err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		out = append(out, cid)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (r *Repository) ListInterviewsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]model.Interview, error) {
	const q = `
SELECT interview_id, recruiter_id, title, description, scheduled_at, answer_duration_secs, created_at
FROM interviews WHERE recruiter_id = $1 ORDER BY scheduled_at DESC
`
	return r.queryInterviews(ctx, q, recruiterID)
}

func (r *Repository) ListInterviewsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]model.Interview, error) {
	const q = `
SELECT i.interview_id, i.recruiter_id, i.title, i.description, i.scheduled_at, i.answer_duration_secs, i.created_at
FROM interviews i
JOIN interview_candidates ic ON ic.interview_id = i.interview_id
WHERE ic.candidate_id = $1
ORDER BY i.scheduled_at DESC
`
	return r.queryInterviews(ctx, q, candidateID)
}

// ListInterviewsStartingBetween feeds the reminder scheduler; candidate
// assignments are populated so reminders can fan out.
func (r *Repository) ListInterviewsStartingBetween(ctx context.Context, from, to time.Time) ([]model.Interview, error) {
	const q = `
SELECT interview_id, recruiter_id, title, description, scheduled_at, answer_duration_secs, created_at
FROM interviews WHERE scheduled_at >= $1 AND scheduled_at <= $2
ORDER BY scheduled_at
`
	out, err := r.queryInterviews(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Candidates, err = r.listCandidates(ctx, out[i].InterviewID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) queryInterviews(ctx context.Context, q string, args ...interface{}) ([]model.Interview, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []model.Interview
	for rows.Next() {
		var iv model.Interview
		if err := rows.Scan(&iv.InterviewID, &iv.RecruiterID, &iv.Title, &iv.Description, &iv.ScheduledAt, &iv.AnswerDuration, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// UpdateInterview applies a partial update from a whitelisted column map.
func (r *Repository) UpdateInterview(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	validCols := map[string]bool{
		"title": true, "description": true,
		"scheduled_at": true, "answer_duration_secs": true,
	}

	query := "UPDATE interviews SET "
	args := []interface{}{}
	argID := 1

	for col, val := range updates {
		if !validCols[col] {
			continue
		}
		if argID > 1 {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", col, argID)
		args = append(args, val)
		argID++
	}
	if argID == 1 {
		return nil
	}

	query += fmt.Sprintf(" WHERE interview_id = $%d", argID)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: interview", model.ErrNotFound)
	}
	return nil
}

// ReplaceQuestions swaps the question sequence atomically. The interview row
// is locked first so a submission racing the edit cannot land between the
// response-count check and the rewrite; once any response exists the question
// order is frozen.
func (r *Repository) ReplaceQuestions(ctx context.Context, interviewID uuid.UUID, questions []model.QuestionInput) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT true FROM interviews WHERE interview_id = $1 FOR UPDATE`, interviewID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: interview", model.ErrNotFound)
			}
			return fmt.Errorf("lock interview: %w", err)
		}

		var responses int
		if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM responses WHERE interview_id = $1`, interviewID).Scan(&responses); err != nil {
			return fmt.Errorf("count responses: %w", err)
		}
		if responses > 0 {
			return fmt.Errorf("%w: questions are frozen once a response exists", model.ErrForbidden)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE interview_id = $1`, interviewID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		return insertQuestions(ctx, tx, interviewID, questions)
	})
}

func (r *Repository) AssignCandidates(ctx context.Context, interviewID uuid.UUID, candidateIDs []uuid.UUID) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT true FROM interviews WHERE interview_id = $1`, interviewID).Scan(&exists); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: interview", model.ErrNotFound)
			}
			return fmt.Errorf("check interview: %w", err)
		}
		return insertCandidates(ctx, tx, interviewID, candidateIDs)
	})
}

// UnassignCandidate is idempotent: removing an absent id is not an error.
func (r *Repository) UnassignCandidate(ctx context.Context, interviewID, candidateID uuid.UUID) error {
	const q = `DELETE FROM interview_candidates WHERE interview_id = $1 AND candidate_id = $2`
	if _, err := r.db.Exec(ctx, q, interviewID, candidateID); err != nil {
		return fmt.Errorf("unassign candidate: %w", err)
	}
	return nil
}

func (r *Repository) IsCandidateAssigned(ctx context.Context, interviewID, candidateID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM interview_candidates WHERE interview_id = $1 AND candidate_id = $2)`
	var assigned bool
	if err := r.db.QueryRow(ctx, q, interviewID, candidateID).Scan(&assigned); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return assigned, nil
}

// DeleteInterview removes the interview and everything embedded in it.
func (r *Repository) DeleteInterview(ctx context.Context, interviewID uuid.UUID) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		for _, q := range []string{
			`DELETE FROM notifications WHERE interview_id = $1`,
			`DELETE FROM responses WHERE interview_id = $1`,
			`DELETE FROM interview_candidates WHERE interview_id = $1`,
			`DELETE FROM questions WHERE interview_id = $1`,
		} {
			if _, err := tx.Exec(ctx, q, interviewID); err != nil {
				return fmt.Errorf("delete interview children: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM interviews WHERE interview_id = $1`, interviewID)
		if err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: interview", model.ErrNotFound)
		}
		return nil
	})
}
