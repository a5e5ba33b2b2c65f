package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func establish(t *testing.T, store *MockRecordStore, ownerID string) *SessionService {
	t.Helper()

	svc := NewSessionService(store, zap.NewNop())
	require.NoError(t, svc.Establish(context.Background(), ownerID))
	t.Cleanup(svc.Teardown)
	return svc
}

func waitSnapshot(t *testing.T, svc *SessionService) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.WaitForSnapshot(ctx))
}

func TestSessionService_EstablishRequiresOwner(t *testing.T) {
	svc := NewSessionService(NewMockRecordStore(), zap.NewNop())

	assert.ErrorIs(t, svc.Establish(context.Background(), ""), ErrNotAuthenticated)
	assert.ErrorIs(t, svc.WaitForSnapshot(context.Background()), ErrNotAuthenticated)
	assert.Empty(t, svc.OwnerID())
}

func TestSessionService_MirrorsSnapshots(t *testing.T) {
	store := NewMockRecordStore()
	svc := establish(t, store, "owner-1")

	var (
		mu      sync.Mutex
		changes [][]string
	)
	svc.OnChange(func(sessions []*model.Session) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, ids(sessions))
	})

	assert.Equal(t, "owner-1", svc.OwnerID())
	assert.Empty(t, svc.Sessions())

	store.Push("owner-1",
		session("b", "2024-01-15", "Siti", "Geometry", 2, 75000),
		session("a", "2024-01-10", "Budi", "Algebra", 1, 50000),
	)
	waitSnapshot(t, svc)
	assert.Equal(t, []string{"b", "a"}, ids(svc.Sessions()))

	found, ok := svc.Find("a")
	require.True(t, ok)
	assert.Equal(t, "Budi", found.StudentName)

	_, ok = svc.Find("missing")
	assert.False(t, ok)

	// следующий снимок полностью заменяет зеркало
	store.Push("owner-1", session("c", "2024-01-20", "Andi", "English", 1, 40000))
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"c"}, ids(svc.Sessions()))
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]string{{"b", "a"}, {"c"}}, changes)
}

func TestSessionService_SnapshotErrorKeepsMirror(t *testing.T) {
	store := NewMockRecordStore()
	svc := establish(t, store, "owner-1")

	errs := make(chan error, 1)
	svc.OnError(func(err error) { errs <- err })

	store.Push("owner-1", session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	waitSnapshot(t, svc)

	cause := errors.New("connection reset")
	store.PushError("owner-1", cause)

	select {
	case err := <-errs:
		assert.True(t, IsPersistence(err))
		assert.ErrorIs(t, err, cause)
	case <-time.After(time.Second):
		t.Fatal("error handler was not called")
	}
	assert.Equal(t, []string{"a"}, ids(svc.Sessions()))
}

func TestSessionService_ReestablishDropsPreviousOwner(t *testing.T) {
	store := NewMockRecordStore()
	svc := establish(t, store, "owner-1")

	store.Push("owner-1", session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	waitSnapshot(t, svc)

	require.NoError(t, svc.Establish(context.Background(), "owner-2"))
	assert.Equal(t, "owner-2", svc.OwnerID())
	assert.Empty(t, svc.Sessions())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, svc.WaitForSnapshot(ctx))

	store.Push("owner-2", session("x", "2024-02-01", "Siti", "Geometry", 1, 60000))
	waitSnapshot(t, svc)
	assert.Equal(t, []string{"x"}, ids(svc.Sessions()))
}

func TestSessionService_TeardownForgetsOwner(t *testing.T) {
	store := NewMockRecordStore()
	svc := establish(t, store, "owner-1")

	store.Push("owner-1", session("a", "2024-01-10", "Budi", "Algebra", 1, 50000))
	waitSnapshot(t, svc)

	svc.Teardown()

	assert.Empty(t, svc.OwnerID())
	assert.Empty(t, svc.Sessions())
	assert.ErrorIs(t, svc.WaitForSnapshot(context.Background()), ErrNotAuthenticated)
}

func TestSessionService_Create(t *testing.T) {
	t.Run("validation happens before the store", func(t *testing.T) {
		store := NewMockRecordStore()
		svc := NewSessionService(store, zap.NewNop())

		in := validInput()
		in.Topic = " "

		_, err := svc.Create(context.Background(), in)
		field, ok := IsValidation(err)
		assert.True(t, ok)
		assert.Equal(t, FieldTopic, field)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires owner", func(t *testing.T) {
		store := NewMockRecordStore()
		svc := NewSessionService(store, zap.NewNop())

		_, err := svc.Create(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("writes trimmed input and leaves mirror to the subscription", func(t *testing.T) {
		store := NewMockRecordStore()
		svc := establish(t, store, "owner-1")
		store.On("Create", mock.Anything, "owner-1", validInput()).Return("new-id", nil)

		in := validInput()
		in.StudentName = " Budi  "

		id, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "new-id", id)
		assert.Empty(t, svc.Sessions())
		store.AssertExpectations(t)
	})

	t.Run("store failure is a persistence error", func(t *testing.T) {
		store := NewMockRecordStore()
		svc := establish(t, store, "owner-1")
		cause := errors.New("permission denied")
		store.On("Create", mock.Anything, "owner-1", mock.Anything).Return("", cause)

		_, err := svc.Create(context.Background(), validInput())
		assert.True(t, IsPersistence(err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestSessionService_UpdateAndDelete(t *testing.T) {
	store := NewMockRecordStore()
	svc := establish(t, store, "owner-1")

	store.On("Update", mock.Anything, "owner-1", "a", validInput()).Return(nil)
	store.On("Delete", mock.Anything, "owner-1", "a").Return(nil)
	store.On("Delete", mock.Anything, "owner-1", "gone").Return(errors.New("not found"))

	require.NoError(t, svc.Update(context.Background(), "a", validInput()))
	require.NoError(t, svc.Delete(context.Background(), "a"))

	err := svc.Delete(context.Background(), "gone")
	assert.True(t, IsPersistence(err))

	in := validInput()
	in.Duration = 0
	err = svc.Update(context.Background(), "a", in)
	field, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, FieldDuration, field)

	store.AssertNumberOfCalls(t, "Update", 1)
}

func TestSessionService_WritesRequireOwner(t *testing.T) {
	store := NewMockRecordStore()
	svc := NewSessionService(store, zap.NewNop())

	assert.ErrorIs(t, svc.Update(context.Background(), "a", validInput()), ErrNotAuthenticated)
	assert.ErrorIs(t, svc.Delete(context.Background(), "a"), ErrNotAuthenticated)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_ConcurrentEstablishKeepsOneSubscription(t *testing.T) {
	store := NewMockRecordStore()
	svc := NewSessionService(store, zap.NewNop())
	t.Cleanup(svc.Teardown)

	var wg sync.WaitGroup
	for _, owner := range []string{"owner-1", "owner-2", "owner-3", "owner-4"} {
		owner := owner
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Establish(context.Background(), owner))
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return store.Active() == 1
	}, time.Second, 10*time.Millisecond)

	svc.Teardown()
	assert.Eventually(t, func() bool {
		return store.Active() == 0
	}, time.Second, 10*time.Millisecond)
}
