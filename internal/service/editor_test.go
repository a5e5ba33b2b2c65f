package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSessionWriter struct {
	mock.Mock
}

func (m *MockSessionWriter) Create(ctx context.Context, in model.SessionInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockSessionWriter) Update(ctx context.Context, id string, in model.SessionInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockSessionWriter) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testToday = "2024-03-01"

func newTestEditor(writer sessionWriter) *Editor {
	e := NewEditor(writer, zap.NewNop())
	e.today = func() string { return testToday }
	e.CancelEdit()
	return e
}

func TestEditor_InitialState(t *testing.T) {
	e := newTestEditor(new(MockSessionWriter))

	assert.Equal(t, model.Creating(), e.State())
	assert.Equal(t, model.Idle(), e.DeleteState())
	assert.Equal(t, model.SessionInput{Date: testToday}, e.Form())
}

func TestEditor_SaveCreates(t *testing.T) {
	writer := new(MockSessionWriter)
	e := newTestEditor(writer)
	writer.On("Create", mock.Anything, validInput()).Return("new-id", nil)

	e.SetForm(validInput())
	result, err := e.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SaveResult{ID: "new-id", Created: true}, result)
	assert.Equal(t, model.Creating(), e.State())
	assert.Equal(t, model.SessionInput{Date: testToday}, e.Form())
	writer.AssertExpectations(t)
}

func TestEditor_BeginEditAndSaveUpdates(t *testing.T) {
	writer := new(MockSessionWriter)
	e := newTestEditor(writer)

	existing := session("a", "2024-01-10", "Budi", "Algebra", 1, 50000)
	e.BeginEdit(existing)

	assert.Equal(t, model.Editing("a"), e.State())
	assert.Equal(t, existing.Input(), e.Form())

	changed := existing.Input()
	changed.Topic = "Geometry"
	e.SetForm(changed)
	writer.On("Update", mock.Anything, "a", changed).Return(nil)

	result, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SaveResult{ID: "a"}, result)
	assert.Equal(t, model.Creating(), e.State())
	assert.Equal(t, testToday, e.Form().Date)
	writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEditor_SaveFailureKeepsForm(t *testing.T) {
	writer := new(MockSessionWriter)
	e := newTestEditor(writer)

	e.BeginEdit(session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	form := e.Form()
	form.StudentName = ""
	e.SetForm(form)

	writer.On("Update", mock.Anything, "a", form).
		Return(&ValidationError{Field: FieldStudentName, Reason: "is required"})

	_, err := e.Save(context.Background())
	field, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, FieldStudentName, field)
	assert.Equal(t, model.Editing("a"), e.State())
	assert.Equal(t, form, e.Form())
}

func TestEditor_CancelEdit(t *testing.T) {
	e := newTestEditor(new(MockSessionWriter))

	e.BeginEdit(session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	e.CancelEdit()

	assert.Equal(t, model.Creating(), e.State())
	assert.Equal(t, model.SessionInput{Date: testToday}, e.Form())
}

func TestEditor_DeleteConfirmation(t *testing.T) {
	t.Run("request requires a target", func(t *testing.T) {
		e := newTestEditor(new(MockSessionWriter))
		assert.ErrorIs(t, e.RequestDelete(""), ErrSessionNotFound)
		assert.Equal(t, model.Idle(), e.DeleteState())
	})

	t.Run("new request replaces pending one", func(t *testing.T) {
		e := newTestEditor(new(MockSessionWriter))
		require.NoError(t, e.RequestDelete("a"))
		require.NoError(t, e.RequestDelete("b"))
		assert.Equal(t, model.PendingConfirmation("b"), e.DeleteState())
	})

	t.Run("confirm without request", func(t *testing.T) {
		writer := new(MockSessionWriter)
		e := newTestEditor(writer)

		_, err := e.ConfirmDelete(context.Background())
		assert.ErrorIs(t, err, ErrNoPendingDelete)
		writer.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("confirm deletes and returns to idle", func(t *testing.T) {
		writer := new(MockSessionWriter)
		e := newTestEditor(writer)
		writer.On("Delete", mock.Anything, "b").Return(nil)

		require.NoError(t, e.RequestDelete("b"))
		id, err := e.ConfirmDelete(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "b", id)
		assert.Equal(t, model.Idle(), e.DeleteState())
		writer.AssertExpectations(t)
	})

	t.Run("failed confirm stays pending", func(t *testing.T) {
		writer := new(MockSessionWriter)
		e := newTestEditor(writer)
		cause := &PersistenceError{Op: "delete session", Cause: errors.New("offline")}
		writer.On("Delete", mock.Anything, "b").Return(cause)

		require.NoError(t, e.RequestDelete("b"))
		_, err := e.ConfirmDelete(context.Background())

		assert.True(t, IsPersistence(err))
		assert.Equal(t, model.PendingConfirmation("b"), e.DeleteState())
	})

	t.Run("cancel does not touch the store", func(t *testing.T) {
		writer := new(MockSessionWriter)
		e := newTestEditor(writer)

		require.NoError(t, e.RequestDelete("b"))
		e.CancelDeleteRequest()

		assert.Equal(t, model.Idle(), e.DeleteState())
		writer.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestEditor_DeleteIsIndependentOfEdit(t *testing.T) {
	writer := new(MockSessionWriter)
	e := newTestEditor(writer)
	writer.On("Delete", mock.Anything, mock.Anything).Return(nil)

	e.BeginEdit(session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	require.NoError(t, e.RequestDelete("b"))
	assert.Equal(t, model.Editing("a"), e.State())

	_, err := e.ConfirmDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Editing("a"), e.State())

	// удаление редактируемой записи сбрасывает форму
	require.NoError(t, e.RequestDelete("a"))
	_, err = e.ConfirmDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Creating(), e.State())
	assert.Equal(t, testToday, e.Form().Date)
}
