package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validCreateRequest(now time.Time) CreateInterviewRequest {
	return CreateInterviewRequest{
		Title:          "Backend engineer screen",
		Description:    "First round",
		ScheduledAt:    now.Add(48 * time.Hour),
		AnswerDuration: 60,
		Questions: []QuestionInput{
			{Text: "Tell us about yourself", AnswerKind: AnswerKindRecording},
			{Text: "Paste a code sample", AnswerKind: AnswerKindText},
		},
	}
}

func TestCreateInterviewRequest_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(r *CreateInterviewRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *CreateInterviewRequest) {}},
		{
			name:    "scheduled in the past",
			mutate:  func(r *CreateInterviewRequest) { r.ScheduledAt = now.Add(-time.Hour) },
			wantErr: true,
		},
		{
			name:    "scheduled exactly now",
			mutate:  func(r *CreateInterviewRequest) { r.ScheduledAt = now },
			wantErr: true,
		},
		{
			name:    "answer duration below minimum",
			mutate:  func(r *CreateInterviewRequest) { r.AnswerDuration = 5 },
			wantErr: true,
		},
		{
			name:   "answer duration at minimum",
			mutate: func(r *CreateInterviewRequest) { r.AnswerDuration = int(MinAnswerDuration.Seconds()) },
		},
		{
			name:    "no questions",
			mutate:  func(r *CreateInterviewRequest) { r.Questions = nil },
			wantErr: true,
		},
		{
			name:    "question with empty text",
			mutate:  func(r *CreateInterviewRequest) { r.Questions[0].Text = "" },
			wantErr: true,
		},
		{
			name:    "question with unknown answer kind",
			mutate:  func(r *CreateInterviewRequest) { r.Questions[1].AnswerKind = "essay" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest(now)
			tc.mutate(&req)

			err := req.Validate(now)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPatchInterviewRequest_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	empty := ""
	title := "Updated title"
	shortDur := 3
	okDur := 120

	tests := []struct {
		name    string
		req     PatchInterviewRequest
		wantErr bool
	}{
		{name: "empty patch is valid", req: PatchInterviewRequest{}},
		{name: "title only", req: PatchInterviewRequest{Title: &title}},
		{name: "empty title rejected", req: PatchInterviewRequest{Title: &empty}, wantErr: true},
		{name: "empty description rejected", req: PatchInterviewRequest{Description: &empty}, wantErr: true},
		{name: "future reschedule", req: PatchInterviewRequest{ScheduledAt: &future}},
		{name: "past reschedule rejected", req: PatchInterviewRequest{ScheduledAt: &past}, wantErr: true},
		{name: "duration below minimum rejected", req: PatchInterviewRequest{AnswerDuration: &shortDur}, wantErr: true},
		{name: "duration ok", req: PatchInterviewRequest{AnswerDuration: &okDur}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate(now)
			if tc.wantErr {
				require.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, want := range []Role{RoleAdmin, RoleRecruiter, RoleCandidate} {
		got, err := ParseRole(string(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseRole("superuser")
	require.True(t, errors.Is(err, ErrValidation))
	_, err = ParseRole("")
	require.True(t, errors.Is(err, ErrValidation))
}
