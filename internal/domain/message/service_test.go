package message_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/projeto/internal/domain/message"
	"github.com/rpggio/projeto/internal/repository"
	"github.com/rpggio/projeto/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageService_StickyIsPersisted(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}
	repo.On("Save", ctx, mock.MatchedBy(func(msg *message.Message) bool {
		return msg.Level == message.LevelSuccess &&
			msg.Text == "Projeto salvo com sucesso." &&
			msg.Sticky &&
			msg.ID != "" &&
			!msg.CreatedAt.IsZero()
	})).Return(nil)

	svc := message.NewService(repo, nil)
	svc.Success(ctx, "Projeto salvo com sucesso.", true)

	repo.AssertExpectations(t)
}

func TestMessageService_TransientIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}

	var got []message.Message
	svc := message.NewService(repo, nil)
	svc.Subscribe(func(msg message.Message) { got = append(got, msg) })
	svc.Error(ctx, "falhou", false)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	require.Len(t, got, 1)
	require.Equal(t, message.LevelError, got[0].Level)
	require.Equal(t, "falhou", got[0].Text)
	require.False(t, got[0].Sticky)
}

func TestMessageService_PersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}
	repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	var got []message.Message
	svc := message.NewService(repo, nil)
	svc.Subscribe(func(msg message.Message) { got = append(got, msg) })

	require.NotPanics(t, func() { svc.Error(ctx, "X", true) })
	require.Len(t, got, 1)
}

func TestMessageService_Dismiss(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}
	repo.On("Dismiss", ctx, "m1").Return(nil)
	repo.On("Dismiss", ctx, "gone").Return(repository.ErrNotFound)

	svc := message.NewService(repo, nil)
	require.NoError(t, svc.Dismiss(ctx, "m1"))
	require.ErrorIs(t, svc.Dismiss(ctx, "gone"), message.ErrMessageNotFound)
	require.ErrorIs(t, svc.Dismiss(ctx, " "), message.ErrInvalidInput)
}

func TestMessageService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}
	repo.On("Get", ctx, "m1").Return(&message.Message{ID: "m1", Text: "Projeto removido"}, nil)
	repo.On("Get", ctx, "gone").Return(nil, repository.ErrNotFound)

	svc := message.NewService(repo, nil)
	got, err := svc.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "Projeto removido", got.Text)

	_, err = svc.Get(ctx, "gone")
	require.ErrorIs(t, err, message.ErrMessageNotFound)
	_, err = svc.Get(ctx, "")
	require.ErrorIs(t, err, message.ErrInvalidInput)
}

func TestMessageService_PendingAndDismissAll(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MessageRepository{}
	repo.On("ListPending", ctx).Return(nil, nil).Once()
	repo.On("DismissAll", ctx).Return(int64(2), nil)

	svc := message.NewService(repo, nil)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Empty(t, pending)

	n, err := svc.DismissAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestMessageService_NilRepository(t *testing.T) {
	ctx := context.Background()
	svc := message.NewService(nil, nil)

	svc.Success(ctx, "ok", true)
	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
	require.ErrorIs(t, svc.Dismiss(ctx, "m1"), message.ErrMessageNotFound)
}
