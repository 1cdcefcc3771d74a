package projeto_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type backendErr struct {
	msg string
}

func (e *backendErr) Error() string          { return "backend: " + e.msg }
func (e *backendErr) BackendMessage() string { return e.msg }

func TestProjetoService_CreateSuccess(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	draft := projeto.Projeto{Name: "Portal", Risk: projeto.RiskHigh}
	stored := projeto.Projeto{ID: "p1", Name: "Portal", Risk: projeto.RiskHigh}

	api.On("Post", ctx, projeto.OpCreate, "/projeto", draft, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(4).(*projeto.Projeto) = stored
		}).
		Return(nil)
	notifier.On("Success", ctx, "Projeto salvo com sucesso.", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Create(ctx, draft)

	require.True(t, res.OK())
	require.Equal(t, &stored, res.Value)
	require.Equal(t, projeto.MessageCreated, res.Message)
	notifier.AssertNumberOfCalls(t, "Success", 1)
	notifier.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)
	api.AssertExpectations(t)
}

func TestProjetoService_CreateBackendMessage(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Post", ctx, projeto.OpCreate, "/projeto", mock.Anything, mock.Anything).
		Return(&backendErr{msg: "X"})
	notifier.On("Error", ctx, "X", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Create(ctx, projeto.Projeto{Name: "Portal"})

	require.False(t, res.OK())
	require.Equal(t, projeto.OutcomeFailure, res.Outcome)
	require.Nil(t, res.Value)
	require.Equal(t, "X", res.Message)
	require.Error(t, res.Err)
	notifier.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Success", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjetoService_CreateUnidentifiedError(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Post", ctx, projeto.OpCreate, "/projeto", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))
	notifier.On("Error", ctx, mock.Anything, true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Create(ctx, projeto.Projeto{Name: "Portal"})

	require.False(t, res.OK())
	require.Nil(t, res.Value)
	require.Regexp(t, `^Erro não identificado\. \[.*\.postProjeto\]$`, res.Message)
	require.Equal(t, "Erro não identificado. [pro.sev.postProjeto]", res.Message)
	notifier.AssertCalled(t, "Error", ctx, res.Message, true)
}

func TestProjetoService_BackendMessageEmptyFallsBackToGeneric(t *testing.T) {
	err := &backendErr{msg: ""}
	require.Equal(t, "Erro não identificado. [pro.sev.getProjeto]", projeto.ErrorText(projeto.OpGet, err))
}

func TestProjetoService_UpdateSubtypePaths(t *testing.T) {
	cases := []struct {
		subtype projeto.Subtype
		path    string
	}{
		{projeto.SubtypePrimary, "/projeto/p1"},
		{"", "/projeto/p1"},
		{projeto.SubtypeTeam, "/projeto-equipe/p1"},
		{projeto.SubtypeIndicator, "/projeto-indicador/p1"},
		{projeto.SubtypeIndicatorPhase, "/projeto-indicador-fase/p1"},
		{"unknown", "/projeto/p1"},
	}

	for _, tc := range cases {
		t.Run(string(tc.subtype), func(t *testing.T) {
			ctx := context.Background()
			api := &mocks.API{}
			notifier := &mocks.Notifier{}
			p := projeto.Projeto{ID: "p1", Name: "Portal"}

			api.On("Put", ctx, projeto.OpUpdate, tc.path, p, mock.Anything).
				Run(func(args mock.Arguments) {
					*args.Get(4).(*projeto.Projeto) = p
				}).
				Return(nil)
			notifier.On("Success", ctx, "Projeto editado e salvo com sucesso.", true).Return()

			svc := projeto.NewService(api, notifier, nil)
			res := svc.Update(ctx, p, tc.subtype)

			require.True(t, res.OK())
			require.Equal(t, "p1", res.Value.ID)
			api.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestProjetoService_UpdateFailure(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Put", ctx, projeto.OpUpdate, "/projeto-equipe/p1", mock.Anything, mock.Anything).
		Return(errors.New("boom"))
	notifier.On("Error", ctx, "Erro não identificado. [pro.sev.putProjeto]", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Update(ctx, projeto.Projeto{ID: "p1"}, projeto.SubtypeTeam)

	require.False(t, res.OK())
	require.Nil(t, res.Value)
	notifier.AssertExpectations(t)
}

func TestProjetoService_RemoveForwardsBackendMessage(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Delete", ctx, projeto.OpDelete, "/projeto/p1", mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(3).(*projeto.DeleteResponse).Message = "Projeto removido."
		}).
		Return(nil)
	notifier.On("Success", ctx, "Projeto removido.", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Remove(ctx, "p1")

	require.True(t, res.OK())
	require.Equal(t, "Projeto removido.", res.Value.Message)
	require.Equal(t, "Projeto removido.", res.Message)
	notifier.AssertExpectations(t)
}

func TestProjetoService_RemoveFailure(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Delete", ctx, projeto.OpDelete, "/projeto/p1", mock.Anything).Return(errors.New("timeout"))
	notifier.On("Error", ctx, "Erro não identificado. [pro.sev.deleteProjeto]", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.Remove(ctx, "p1")

	require.False(t, res.OK())
	require.Nil(t, res.Value)
	notifier.AssertExpectations(t)
}

func TestProjetoService_ListFallbackIsEmpty(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Get", ctx, projeto.OpList, "/projeto", mock.Anything).Return(errors.New("down"))
	api.On("Get", ctx, projeto.OpListManagers, "/projeto/manager", mock.Anything).Return(errors.New("down"))
	notifier.On("Error", ctx, mock.Anything, true).Return()

	svc := projeto.NewService(api, notifier, nil)

	list := svc.List(ctx)
	require.False(t, list.OK())
	require.NotNil(t, list.Value)
	require.Empty(t, list.Value)

	managers := svc.ListManagers(ctx)
	require.False(t, managers.OK())
	require.NotNil(t, managers.Value)
	require.Empty(t, managers.Value)

	notifier.AssertCalled(t, "Error", ctx, "Erro não identificado. [pro.sev.getProjetos]", true)
	notifier.AssertCalled(t, "Error", ctx, "Erro não identificado. [pro.sev.getGerentes]", true)
}

func TestProjetoService_SilentListings(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Get", ctx, projeto.OpList, "/projeto", mock.Anything).Return(errors.New("down"))

	svc := projeto.NewService(api, notifier, nil, projeto.WithSilentListings())
	res := svc.List(ctx)

	require.False(t, res.OK())
	require.Empty(t, res.Value)
	require.Empty(t, res.Message)
	notifier.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjetoService_ListSuccess(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}

	api.On("Get", ctx, projeto.OpList, "/projeto", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]projeto.Projeto) = []projeto.Projeto{{ID: "a"}, {ID: "b"}}
		}).
		Return(nil)

	svc := projeto.NewService(api, nil, nil)
	res := svc.List(ctx)

	require.True(t, res.OK())
	require.Len(t, res.Value, 2)
	require.Empty(t, res.Message)
}

func TestProjetoService_GetByIDFailure(t *testing.T) {
	ctx := context.Background()
	api := &mocks.API{}
	notifier := &mocks.Notifier{}

	api.On("Get", ctx, projeto.OpGet, "/projeto/missing", mock.Anything).Return(&backendErr{msg: "Projeto não encontrado."})
	notifier.On("Error", ctx, "Projeto não encontrado.", true).Return()

	svc := projeto.NewService(api, notifier, nil)
	res := svc.GetByID(ctx, "missing")

	require.False(t, res.OK())
	require.Nil(t, res.Value)
	notifier.AssertExpectations(t)
}
