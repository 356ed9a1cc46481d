package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeletionGuardWindow protects the last reminder before a near-term
// interview: notifications linked to an interview starting inside this
// window cannot be deleted.
const DeletionGuardWindow = 24 * time.Hour

// Store is the slice of persistence the scheduler needs.
type Store interface {
	ListInterviewsStartingBetween(ctx context.Context, from, to time.Time) ([]model.Interview, error)
	CreateNotificationIfAbsent(ctx context.Context, n *model.Notification) (bool, error)
	GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	GetInterviewByID(ctx context.Context, id uuid.UUID) (*model.Interview, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
}

// Service generates interview reminders and enforces the deletion guard.
type Service struct {
	store     Store
	lookahead time.Duration
	logger    *zap.SugaredLogger
}

func NewService(store Store, lookahead time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		lookahead: lookahead,
		logger:    logger.Sugar(),
	}
}

func reminderMessage(title string) string {
	return fmt.Sprintf("Reminder: You have an interview titled %q scheduled for tomorrow.", title)
}

// GenerateReminders creates a reminder for the owning recruiter and every
// assigned candidate of each interview starting inside [now, now+lookahead].
// now is a parameter so tests drive the window, and the insert-if-absent
// store call makes repeated runs idempotent.
func (s *Service) GenerateReminders(ctx context.Context, now time.Time) error {
	interviews, err := s.store.ListInterviewsStartingBetween(ctx, now, now.Add(s.lookahead))
	if err != nil {
		return fmt.Errorf("list upcoming interviews: %w", err)
	}

	created := 0
	for _, iv := range interviews {
		recipients := append([]uuid.UUID{iv.RecruiterID}, iv.Candidates...)
		msg := reminderMessage(iv.Title)
		for _, userID := range recipients {
			ok, err := s.store.CreateNotificationIfAbsent(ctx, &model.Notification{
				UserID:      userID,
				InterviewID: iv.InterviewID,
				Message:     msg,
			})
			if err != nil {
				return fmt.Errorf("create reminder for interview %s: %w", iv.InterviewID, err)
			}
			if ok {
				created++
			}
		}
	}

	s.logger.Infow("reminder run finished", "interviews", len(interviews), "created", created)
	return nil
}

// Delete removes a notification owned by userID. Deletion is refused while
// the linked interview starts within the guard window, so a recipient cannot
// lose the last reminder before a near-term interview. A notification whose
// interview already started or no longer exists is always deletable.
func (s *Service) Delete(ctx context.Context, userID, notificationID uuid.UUID, now time.Time) error {
	n, err := s.store.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", model.ErrForbidden)
	}

	iv, err := s.store.GetInterviewByID(ctx, n.InterviewID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		// interview is gone, nothing left to protect
	case err != nil:
		return err
	default:
		until := iv.ScheduledAt.Sub(now)
		if until > 0 && until <= DeletionGuardWindow {
			return fmt.Errorf("%w: interview starts in %s; reminders within 24 hours cannot be deleted",
				model.ErrForbidden, until.Round(time.Minute))
		}
	}

	return s.store.DeleteNotification(ctx, notificationID)
}
