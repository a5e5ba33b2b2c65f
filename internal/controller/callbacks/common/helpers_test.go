package common

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback(EditSession + "3f2a-11")
	require.NoError(t, err)
	assert.Equal(t, "3f2a-11", id)

	_, err = ParseIDFromCallback("delete:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIDFromCallback("noop")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParsePageFromCallback(t *testing.T) {
	page, err := ParsePageFromCallback(ListPage + "2")
	require.NoError(t, err)
	assert.Equal(t, 2, page)

	_, err = ParsePageFromCallback(ListPage + "x")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestOwnerID(t *testing.T) {
	assert.Equal(t, "123456789", OwnerID(123456789))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified")))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
	assert.False(t, IsMessageNotModifiedError(nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, FieldErrorMessage(service.FieldFee),
		ErrorMessage(&service.ValidationError{Field: service.FieldFee, Reason: "must not be negative"}))
	assert.Contains(t, ErrorMessage(service.ErrNotAuthenticated), "/start")
	assert.Contains(t, ErrorMessage(service.ErrNoPendingDelete), "menunggu dihapus")
	assert.Contains(t, ErrorMessage(&service.PersistenceError{Op: "create session", Cause: errors.New("x")}), "server")
	assert.Equal(t, "❌ Terjadi kesalahan", ErrorMessage(errors.New("boom")))

	persistence := &service.PersistenceError{Op: "delete session", Cause: errors.New("offline")}
	assert.Contains(t, DeleteErrorMessage(persistence), "menghapus")
	assert.Equal(t, ErrorMessage(service.ErrSessionNotFound), DeleteErrorMessage(service.ErrSessionNotFound))
}
