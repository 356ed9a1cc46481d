package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AnswerKind string

const (
	AnswerKindText      AnswerKind = "text"
	AnswerKindFile      AnswerKind = "file"
	AnswerKindRecording AnswerKind = "recording"
)

// MinAnswerDuration is the smallest per-question answer window a recruiter
// can configure.
const MinAnswerDuration = 10 * time.Second

type Question struct {
	QID         int64      `json:"q_id" db:"q_id"`
	InterviewID uuid.UUID  `json:"interview_id" db:"interview_id"`
	Text        string     `json:"text" db:"text"`
	AnswerKind  AnswerKind `json:"answer_kind" db:"answer_kind"`
	Position    int        `json:"position" db:"position"`
}

// Response is one candidate's submission to an interview. VideoMarks is
// populated asynchronously by the scoring aggregator; Marks stays nil until
// at least one video has been scored.
type Response struct {
	InterviewID uuid.UUID `json:"interview_id" db:"interview_id"`
	CandidateID uuid.UUID `json:"candidate_id" db:"candidate_id"`
	Answers     []string  `json:"answers" db:"answers"`
	VideoMarks  []int     `json:"video_marks" db:"video_marks"`
	Marks       *int      `json:"marks" db:"marks"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

type Interview struct {
	InterviewID    uuid.UUID   `json:"interview_id" db:"interview_id"`
	RecruiterID    uuid.UUID   `json:"recruiter_id" db:"recruiter_id"`
	Title          string      `json:"title" db:"title"`
	Description    string      `json:"description" db:"description"`
	ScheduledAt    time.Time   `json:"scheduled_at" db:"scheduled_at"`
	AnswerDuration int         `json:"answer_duration_secs" db:"answer_duration_secs"`
	Questions      []Question  `json:"questions,omitempty"`
	Candidates     []uuid.UUID `json:"candidates,omitempty"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

type QuestionInput struct {
	Text       string     `json:"text" binding:"required"`
	AnswerKind AnswerKind `json:"answer_kind" binding:"required"`
}

type CreateInterviewRequest struct {
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	ScheduledAt    time.Time       `json:"scheduled_at" binding:"required"`
	AnswerDuration int             `json:"answer_duration_secs" binding:"required"`
	Questions      []QuestionInput `json:"questions" binding:"required"`
	CandidateIDs   []uuid.UUID     `json:"candidate_ids"`
}

// Validate applies the rules gin's binding tags cannot express. now is a
// parameter so tests control the clock.
func (r *CreateInterviewRequest) Validate(now time.Time) error {
	if !r.ScheduledAt.After(now) {
		return fmt.Errorf("%w: scheduled_at must be in the future", ErrValidation)
	}
	if r.AnswerDuration < int(MinAnswerDuration.Seconds()) {
		return fmt.Errorf("%w: answer_duration_secs must be at least %d", ErrValidation, int(MinAnswerDuration.Seconds()))
	}
	if len(r.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrValidation)
	}
	return ValidateQuestions(r.Questions)
}

// ValidateQuestions checks every question has text and a known answer kind.
func ValidateQuestions(qs []QuestionInput) error {
	for i, q := range qs {
		if q.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrValidation, i+1)
		}
		switch q.AnswerKind {
		case AnswerKindText, AnswerKindFile, AnswerKindRecording:
		default:
			return fmt.Errorf("%w: question %d has unknown answer kind %q", ErrValidation, i+1, q.AnswerKind)
		}
	}
	return nil
}

type PatchInterviewRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	AnswerDuration *int       `json:"answer_duration_secs,omitempty"`
}

func (r *PatchInterviewRequest) Validate(now time.Time) error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if r.Description != nil && *r.Description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if r.ScheduledAt != nil && !r.ScheduledAt.After(now) {
		return fmt.Errorf("%w: scheduled_at must be in the future", ErrValidation)
	}
	if r.AnswerDuration != nil && *r.AnswerDuration < int(MinAnswerDuration.Seconds()) {
		return fmt.Errorf("%w: answer_duration_secs must be at least %d", ErrValidation, int(MinAnswerDuration.Seconds()))
	}
	return nil
}

type ReplaceQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1"`
}

type AssignCandidatesRequest struct {
	CandidateIDs []uuid.UUID `json:"candidate_ids" binding:"required,min=1"`
}

type SubmitResponseRequest struct {
	Answers []string `json:"answers"`
}

// InterviewResults is the recruiter-facing projection of an interview's
// responses.
type InterviewResults struct {
	InterviewID uuid.UUID  `json:"interview_id"`
	Title       string     `json:"title"`
	Questions   []Question `json:"questions"`
	Responses   []Response `json:"responses"`
}
