package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-forum/internal/domain"
	"qa-forum/internal/repository"
)

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, authorizeOwner(7, 7))
	assert.ErrorIs(t, authorizeOwner(7, 8), ErrPermissionDenied)
}

func TestLoadOwned(t *testing.T) {
	questions := map[uint]*domain.Question{1: {ID: 1, UserID: 10}}
	find := func(_ context.Context, id uint) (*domain.Question, error) {
		if q, ok := questions[id]; ok {
			return q, nil
		}
		if id == 99 {
			return nil, errors.New("connection reset")
		}
		return nil, repository.ErrNotFound
	}
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		q, err := loadOwned(ctx, find, 1, 10, ErrQuestionNotFound)
		require.NoError(t, err)
		assert.Equal(t, uint(1), q.ID)
	})
	t.Run("other user", func(t *testing.T) {
		q, err := loadOwned(ctx, find, 1, 11, ErrQuestionNotFound)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Nil(t, q)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := loadOwned(ctx, find, 2, 10, ErrQuestionNotFound)
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})
	t.Run("repository error passes through", func(t *testing.T) {
		_, err := loadOwned(ctx, find, 99, 10, ErrQuestionNotFound)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrQuestionNotFound)
	})
}

func TestLoadOwned_Answer(t *testing.T) {
	find := func(_ context.Context, id uint) (*domain.Answer, error) {
		return &domain.Answer{ID: id, UserID: 4}, nil
	}
	_, err := loadOwned(context.Background(), find, 3, 5, ErrAnswerNotFound)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, notBlank("subject", "hello", "content", "world"))
	assert.ErrorIs(t, notBlank("subject", "hello", "content", " \t\n"), ErrValidation)
	assert.ErrorIs(t, notBlank("subject", ""), ErrValidation)
}

func TestPageBounds(t *testing.T) {
	skip, limit, err := pageBounds(2, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 10, limit)

	_, _, err = pageBounds(-1, 10)
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = pageBounds(0, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = pageBounds(0, MaxPageSize+1)
	assert.ErrorIs(t, err, ErrValidation)
}
