package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridroom/tictactoe-backend/internal/entity"
	"github.com/gridroom/tictactoe-backend/testing/suite"
)

const testSessionTTL = time.Hour

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, testSessionTTL)

	// Given: a ready session on a default board
	session := &entity.Session{
		ID:          "123",
		GridSize:    entity.DefaultGridSize,
		Competitors: entity.DefaultCompetitors(),
		Board:       make([]string, 9),
		Status:      entity.StatusReady,
	}

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, session)

	// Then: no error should be returned, and the key carries the TTL
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "session:123").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, testSessionTTL)

		// Given: a stored session mid-round
		session := &entity.Session{
			ID:          "123",
			GridSize:    entity.DefaultGridSize,
			Competitors: entity.DefaultCompetitors(),
			Board:       []string{"X", "", "", "", "O", "", "", "", ""},
			ActiveIndex: 0,
			Status:      entity.StatusInProgress,
		}

		err := sessionRepo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrievedSession, err := sessionRepo.GetByID(ctx, session.ID)

		// Then: the retrieved session matches the saved one
		require.NoError(t, err)
		require.Equal(t, session, retrievedSession)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, testSessionTTL)

		// When: GetByID is called with a non-existent ID
		retrievedSession, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, retrievedSession)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, testSessionTTL)

	// Given: a stored finished session
	session := &entity.Session{
		ID:          "123",
		GridSize:    entity.DefaultGridSize,
		Competitors: entity.DefaultCompetitors(),
		Board:       []string{"X", "X", "X", "O", "O", "", "", "", ""},
		Status:      entity.StatusWon,
		Winner:      "X",
	}

	err := sessionRepo.CreateOrUpdate(ctx, session)
	require.NoError(t, err)

	// When: DeleteByID is called with the existing ID
	err = sessionRepo.DeleteByID(ctx, session.ID)

	// Then: the session is gone
	require.NoError(t, err)

	_, err = sessionRepo.GetByID(ctx, session.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
