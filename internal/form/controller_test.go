package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/projeto/internal/domain/projeto"
	"github.com/rpggio/projeto/internal/form"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	calls  []projeto.Projeto
	result projeto.Result[*projeto.Projeto]
}

func (f *fakeCreator) Create(_ context.Context, p projeto.Projeto) projeto.Result[*projeto.Projeto] {
	f.calls = append(f.calls, p)
	return f.result
}

type countingNavigator struct {
	backs int
}

func (n *countingNavigator) Back() { n.backs++ }

func fill(t *testing.T, c *form.Controller, values map[form.Field]string) {
	t.Helper()
	for field, value := range values {
		require.NoError(t, c.Edit(field, value))
	}
}

func TestDraft_WithReturnsCopy(t *testing.T) {
	base := form.Draft{Name: "Portal"}
	next, err := base.With(form.FieldRisk, "alto")
	require.NoError(t, err)

	require.Equal(t, "", base.Risk)
	if diff := cmp.Diff(form.Draft{Name: "Portal", Risk: "alto"}, next); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}

	_, err = base.With("budget", "10")
	require.ErrorIs(t, err, form.ErrUnknownField)
}

func TestDraft_ValueCoversEveryField(t *testing.T) {
	d := form.Draft{}
	for i, spec := range form.Fields() {
		var err error
		d, err = d.With(spec.Field, string(rune('a'+i)))
		require.NoError(t, err)
	}
	for i, spec := range form.Fields() {
		require.Equal(t, string(rune('a'+i)), d.Value(spec.Field), spec.Field)
	}
}

func TestController_EditReplacesDraft(t *testing.T) {
	c := form.NewController(&fakeCreator{}, nil, nil)
	before := c.Draft()
	require.NoError(t, c.Edit(form.FieldName, "Portal"))

	require.Equal(t, "", before.Name)
	require.Equal(t, "Portal", c.Draft().Name)
}

func TestController_Validate(t *testing.T) {
	c := form.NewController(&fakeCreator{}, nil, nil)
	fill(t, c, map[form.Field]string{
		form.FieldName:      "Portal",
		form.FieldDateStart: "25/12/2020",
		form.FieldDateEnd:   "",
		form.FieldRisk:      "medio",
		form.FieldStatus:    "andamento",
	})

	p, err := c.Validate()
	require.NoError(t, err)

	want := projeto.Projeto{
		Name:      "Portal",
		DateStart: ptr(time.Date(2020, time.December, 25, 0, 0, 0, 0, time.UTC)),
		Risk:      projeto.RiskMedium,
		Status:    projeto.StatusInProgress,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("projeto mismatch (-want +got):\n%s", diff)
	}
	require.Nil(t, p.DateEnd)
	require.Nil(t, p.DatePrevision)
}

func TestController_ValidateCopiesUnknownEnumsVerbatim(t *testing.T) {
	c := form.NewController(&fakeCreator{}, nil, nil)
	fill(t, c, map[form.Field]string{form.FieldRisk: "critico", form.FieldStatus: ""})

	p, err := c.Validate()
	require.NoError(t, err)
	require.Equal(t, projeto.Risk("critico"), p.Risk)
	require.Equal(t, projeto.Status(""), p.Status)
}

func TestController_ValidateMalformedDate(t *testing.T) {
	c := form.NewController(&fakeCreator{}, nil, nil)
	fill(t, c, map[form.Field]string{form.FieldDatePrevision: "2020-12-25"})

	_, err := c.Validate()
	require.ErrorIs(t, err, projeto.ErrMalformedDate)
	require.Contains(t, err.Error(), "datePrevision")
}

func TestController_OnSaveSuccessNavigatesBack(t *testing.T) {
	stored := &projeto.Projeto{ID: "p1", Name: "Portal"}
	creator := &fakeCreator{result: projeto.Result[*projeto.Projeto]{
		Value:   stored,
		Outcome: projeto.OutcomeSuccess,
		Message: projeto.MessageCreated,
	}}
	nav := &countingNavigator{}
	c := form.NewController(creator, nav, nil)
	fill(t, c, map[form.Field]string{form.FieldName: "Portal", form.FieldDateStart: "01/02/2021"})

	res := c.OnSave(context.Background())

	require.Equal(t, form.SaveCreated, res.Status)
	require.Same(t, stored, res.Projeto)
	require.Equal(t, projeto.MessageCreated, res.Message)
	require.Equal(t, 1, nav.backs)
	require.Len(t, creator.calls, 1)
	require.Equal(t, "Portal", creator.calls[0].Name)
	require.Equal(t, time.February, creator.calls[0].DateStart.Month())
	require.Equal(t, form.Draft{}, c.Draft())
}

func TestController_OnSaveFailureStays(t *testing.T) {
	creator := &fakeCreator{result: projeto.Result[*projeto.Projeto]{
		Outcome: projeto.OutcomeFailure,
		Message: "X",
	}}
	nav := &countingNavigator{}
	c := form.NewController(creator, nav, nil)
	fill(t, c, map[form.Field]string{form.FieldName: "Portal"})

	res := c.OnSave(context.Background())

	require.Equal(t, form.SaveFailed, res.Status)
	require.Nil(t, res.Projeto)
	require.Equal(t, "X", res.Message)
	require.Zero(t, nav.backs)
	require.Equal(t, "Portal", c.Draft().Name)
}

func TestController_OnSaveInvalidSkipsService(t *testing.T) {
	creator := &fakeCreator{}
	nav := &countingNavigator{}
	c := form.NewController(creator, nav, nil)
	fill(t, c, map[form.Field]string{form.FieldDateEnd: "31/02/2021"})

	res := c.OnSave(context.Background())

	require.Equal(t, form.SaveInvalid, res.Status)
	require.ErrorIs(t, res.Err, projeto.ErrMalformedDate)
	require.Empty(t, creator.calls)
	require.Zero(t, nav.backs)
}

func TestController_NavigatorFunc(t *testing.T) {
	called := false
	creator := &fakeCreator{result: projeto.Result[*projeto.Projeto]{Value: &projeto.Projeto{}, Outcome: projeto.OutcomeSuccess}}
	c := form.NewController(creator, form.NavigatorFunc(func() { called = true }), nil)

	res := c.OnSave(context.Background())
	require.Equal(t, form.SaveCreated, res.Status)
	require.True(t, called)
}

func ptr[T any](v T) *T {
	return &v
}
