package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	interviews    map[uuid.UUID]*model.Interview
	notifications map[uuid.UUID]*model.Notification
}

func newMemStore() *memStore {
	return &memStore{
		interviews:    make(map[uuid.UUID]*model.Interview),
		notifications: make(map[uuid.UUID]*model.Notification),
	}
}

func (m *memStore) addInterview(title string, scheduledAt time.Time, recruiter uuid.UUID, candidates ...uuid.UUID) *model.Interview {
	iv := &model.Interview{
		InterviewID: uuid.New(),
		RecruiterID: recruiter,
		Title:       title,
		ScheduledAt: scheduledAt,
		Candidates:  candidates,
	}
	m.interviews[iv.InterviewID] = iv
	return iv
}

func (m *memStore) ListInterviewsStartingBetween(_ context.Context, from, to time.Time) ([]model.Interview, error) {
	var out []model.Interview
	for _, iv := range m.interviews {
		if !iv.ScheduledAt.Before(from) && !iv.ScheduledAt.After(to) {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (m *memStore) CreateNotificationIfAbsent(_ context.Context, n *model.Notification) (bool, error) {
	for _, existing := range m.notifications {
		if existing.UserID == n.UserID && existing.InterviewID == n.InterviewID && existing.Message == n.Message {
			return false, nil
		}
	}
	cp := *n
	cp.NotificationID = uuid.New()
	cp.Status = model.NotificationUnread
	m.notifications[cp.NotificationID] = &cp
	return true, nil
}

func (m *memStore) GetNotificationByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, fmt.Errorf("%w: notification", model.ErrNotFound)
	}
	return n, nil
}

func (m *memStore) GetInterviewByID(_ context.Context, id uuid.UUID) (*model.Interview, error) {
	iv, ok := m.interviews[id]
	if !ok {
		return nil, fmt.Errorf("%w: interview", model.ErrNotFound)
	}
	return iv, nil
}

func (m *memStore) DeleteNotification(_ context.Context, id uuid.UUID) error {
	if _, ok := m.notifications[id]; !ok {
		return fmt.Errorf("%w: notification", model.ErrNotFound)
	}
	delete(m.notifications, id)
	return nil
}

func TestGenerateReminders_FanOutAndWindow(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	recruiter := uuid.New()
	candA, candB := uuid.New(), uuid.New()
	store.addInterview("Backend Engineer", now.Add(10*time.Hour), recruiter, candA, candB)
	store.addInterview("Too far out", now.Add(30*time.Hour), recruiter, candA)
	store.addInterview("Already started", now.Add(-time.Hour), recruiter, candA)

	svc := NewService(store, 24*time.Hour, zap.NewNop())
	require.NoError(t, svc.GenerateReminders(context.Background(), now))

	// recruiter + two candidates for the one in-window interview
	require.Len(t, store.notifications, 3)
	for _, n := range store.notifications {
		require.Contains(t, n.Message, `"Backend Engineer"`)
		require.Equal(t, model.NotificationUnread, n.Status)
	}
}

func TestGenerateReminders_IdempotentAcrossRuns(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store.addInterview("Backend Engineer", now.Add(5*time.Hour), uuid.New(), uuid.New())

	svc := NewService(store, 24*time.Hour, zap.NewNop())
	require.NoError(t, svc.GenerateReminders(context.Background(), now))
	first := len(store.notifications)

	require.NoError(t, svc.GenerateReminders(context.Background(), now.Add(time.Hour)))
	require.Equal(t, first, len(store.notifications))
}

func TestDelete_GuardWindow(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	owner := uuid.New()

	near := store.addInterview("Soon", now.Add(10*time.Hour), uuid.New(), owner)
	far := store.addInterview("Later", now.Add(48*time.Hour), uuid.New(), owner)

	svc := NewService(store, 24*time.Hour, zap.NewNop())

	nearNotif := mustCreate(t, store, owner, near)
	farNotif := mustCreate(t, store, owner, far)

	// interview in 10h: deletion refused
	err := svc.Delete(context.Background(), owner, nearNotif, now)
	require.ErrorIs(t, err, model.ErrForbidden)
	_, stillThere := store.notifications[nearNotif]
	require.True(t, stillThere)

	// interview in 48h: deletion allowed
	require.NoError(t, svc.Delete(context.Background(), owner, farNotif, now))
	_, gone := store.notifications[farNotif]
	require.False(t, gone)
}

func TestDelete_OwnershipAndMissingInterview(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	owner, stranger := uuid.New(), uuid.New()

	iv := store.addInterview("Soon", now.Add(10*time.Hour), uuid.New(), owner)
	id := mustCreate(t, store, owner, iv)

	err := svc(store).Delete(context.Background(), stranger, id, now)
	require.ErrorIs(t, err, model.ErrForbidden)

	// once the interview is gone there is nothing left to protect
	delete(store.interviews, iv.InterviewID)
	require.NoError(t, svc(store).Delete(context.Background(), owner, id, now))
}

func svc(store *memStore) *Service {
	return NewService(store, 24*time.Hour, zap.NewNop())
}

func mustCreate(t *testing.T, store *memStore, userID uuid.UUID, iv *model.Interview) uuid.UUID {
	t.Helper()
	ok, err := store.CreateNotificationIfAbsent(context.Background(), &model.Notification{
		UserID:      userID,
		InterviewID: iv.InterviewID,
		Message:     reminderMessage(iv.Title),
	})
	require.NoError(t, err)
	require.True(t, ok)
	for id, n := range store.notifications {
		if n.UserID == userID && n.InterviewID == iv.InterviewID {
			return id
		}
	}
	t.Fatal("notification not found")
	return uuid.Nil
}
