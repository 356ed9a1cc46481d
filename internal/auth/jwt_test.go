package auth

import (
	"testing"
	"time"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseToken(t *testing.T) {
	user := &model.User{
		UserID: uuid.New(),
		Name:   "Jane Recruiter",
		Email:  "jane@example.com",
		Role:   model.RoleRecruiter,
	}

	token, expiresAt, err := GenerateToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, user.UserID, claims.UserID)
	require.Equal(t, user.Name, claims.Name)
	require.Equal(t, model.RoleRecruiter, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := &model.User{UserID: uuid.New(), Role: model.RoleCandidate}
	token, _, err := GenerateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("another-secret-another-secret-12", token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	user := &model.User{UserID: uuid.New(), Role: model.RoleCandidate}
	token, _, err := GenerateToken(testSecret, user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.Error(t, err)
}

func TestParseToken_UnknownRoleRejected(t *testing.T) {
	user := &model.User{UserID: uuid.New(), Role: model.Role("superuser")}
	token, _, err := GenerateToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	require.Error(t, err)
}
