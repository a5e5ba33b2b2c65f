package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore хранилище, в котором снимки подписки отправляет сам тест
type MockRecordStore struct {
	mock.Mock

	mu     sync.Mutex
	feeds  map[string][]chan model.Snapshot
	active int
}

func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{feeds: make(map[string][]chan model.Snapshot)}
}

func (m *MockRecordStore) Subscribe(ctx context.Context, ownerID string) (<-chan model.Snapshot, error) {
	feed := make(chan model.Snapshot)

	m.mu.Lock()
	m.feeds[ownerID] = append(m.feeds[ownerID], feed)
	m.active++
	m.mu.Unlock()

	out := make(chan model.Snapshot)
	go func() {
		defer close(out)
		defer func() {
			m.mu.Lock()
			m.active--
			m.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case snapshot := <-feed:
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Push отправляет снимок последней подписке владельца
func (m *MockRecordStore) Push(ownerID string, sessions ...*model.Session) {
	m.push(ownerID, model.Snapshot{OwnerID: ownerID, Sessions: sessions})
}

// PushError отправляет неудавшийся снимок
func (m *MockRecordStore) PushError(ownerID string, err error) {
	m.push(ownerID, model.Snapshot{OwnerID: ownerID, Err: err})
}

func (m *MockRecordStore) push(ownerID string, snapshot model.Snapshot) {
	m.mu.Lock()
	feeds := m.feeds[ownerID]
	feed := feeds[len(feeds)-1]
	m.mu.Unlock()

	select {
	case feed <- snapshot:
	case <-time.After(time.Second):
		panic("snapshot was not consumed")
	}
}

// Subscriptions сколько раз открывалась подписка владельца
func (m *MockRecordStore) Subscriptions(ownerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.feeds[ownerID])
}

// Active сколько подписок ещё не отменено
func (m *MockRecordStore) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *MockRecordStore) Create(ctx context.Context, ownerID string, in model.SessionInput) (string, error) {
	args := m.Called(ctx, ownerID, in)
	return args.String(0), args.Error(1)
}

func (m *MockRecordStore) Update(ctx context.Context, ownerID, id string, in model.SessionInput) error {
	args := m.Called(ctx, ownerID, id, in)
	return args.Error(0)
}

func (m *MockRecordStore) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func session(id, date, student, topic string, hours float64, fee int64) *model.Session {
	return &model.Session{
		ID:          id,
		OwnerID:     "owner-1",
		Date:        date,
		StudentName: student,
		Topic:       topic,
		Duration:    hours,
		Fee:         decimal.NewFromInt(fee),
	}
}

func validInput() model.SessionInput {
	return model.SessionInput{
		Date:        "2024-01-15",
		StudentName: "Budi",
		Topic:       "Algebra",
		Duration:    1.5,
		Fee:         decimal.NewFromInt(50000),
	}
}

func ids(sessions []*model.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func day(value string) *time.Time {
	t, err := model.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return &t
}
