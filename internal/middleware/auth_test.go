package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/auth"
	"github.com/mmynk/splitcollect/internal/models"
)

type empty struct{}

// callWithHeader runs RequireAuth around a handler that records the user ID it sees.
func callWithHeader(t *testing.T, jwtManager *auth.JWTManager, header string) (string, error) {
	t.Helper()
	var seen string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetUserID(ctx)
		return connect.NewResponse(&empty{}), nil
	}

	req := connect.NewRequest(&empty{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := RequireAuth(jwtManager)(next)(context.Background(), req)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	token, err := jwtManager.Generate(user)
	require.NoError(t, err)

	userID, err := callWithHeader(t, jwtManager, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, err = callWithHeader(t, jwtManager, "bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-jwt"} {
		userID, err := callWithHeader(t, jwtManager, header)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err), "header %q", header)
		assert.Empty(t, userID)
	}
}

func TestUserIDContext(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
	assert.Equal(t, "user-1", GetUserID(WithUserID(context.Background(), "user-1")))
	assert.Empty(t, GetEmail(context.Background()))
}
