package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"go.uber.org/zap"
)

// RecordStore удалённая коллекция записей, разделённая по владельцам
type RecordStore interface {
	// Subscribe отдаёт текущий список сразу и затем после каждого изменения.
	// Канал закрывается после отмены ctx.
	Subscribe(ctx context.Context, ownerID string) (<-chan model.Snapshot, error)
	Create(ctx context.Context, ownerID string, in model.SessionInput) (string, error)
	Update(ctx context.Context, ownerID, id string, in model.SessionInput) error
	Delete(ctx context.Context, ownerID, id string) error
}

// SessionService держит в памяти зеркало записей текущего владельца.
// Зеркало меняется только снимками подписки, запись идёт напрямую в хранилище.
type SessionService struct {
	store  RecordStore
	logger *zap.Logger

	// establishMu держит замену подписки целиком: активна не больше одной
	establishMu sync.Mutex

	mu         sync.RWMutex
	ownerID    string
	sessions   []*model.Session
	generation uint64
	loaded     chan struct{} // закрывается на первом снимке текущей подписки
	isLoaded   bool
	cancel     context.CancelFunc
	done       chan struct{} // закрывается, когда pump завершился

	listenersMu    sync.Mutex
	changeHandlers []func([]*model.Session)
	errorHandlers  []func(error)
}

func NewSessionService(store RecordStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:  store,
		logger: logger,
	}
}

// Establish устанавливает владельца и открывает подписку на его записи.
// Предыдущая подписка закрывается до открытия новой.
func (s *SessionService) Establish(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return ErrNotAuthenticated
	}

	s.establishMu.Lock()
	defer s.establishMu.Unlock()

	s.stopSubscription()

	subCtx, cancel := context.WithCancel(ctx)
	snapshots, err := s.store.Subscribe(subCtx, ownerID)
	if err != nil {
		cancel()
		s.logger.Error("Failed to subscribe to sessions",
			zap.String("owner_id", ownerID),
			zap.Error(err))
		return persistence("subscribe sessions", err)
	}

	done := make(chan struct{})

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.ownerID = ownerID
	s.sessions = nil
	s.loaded = make(chan struct{})
	s.isLoaded = false
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.logger.Info("Session subscription established",
		zap.String("owner_id", ownerID),
		zap.Uint64("generation", generation))

	go s.pump(generation, ownerID, snapshots, done)

	return nil
}

// Teardown закрывает подписку и забывает владельца
func (s *SessionService) Teardown() {
	s.establishMu.Lock()
	defer s.establishMu.Unlock()

	s.stopSubscription()

	s.mu.Lock()
	s.generation++
	s.ownerID = ""
	s.sessions = nil
	s.loaded = nil
	s.isLoaded = false
	s.mu.Unlock()
}

func (s *SessionService) stopSubscription() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *SessionService) pump(generation uint64, ownerID string, snapshots <-chan model.Snapshot, done chan struct{}) {
	defer close(done)

	for snapshot := range snapshots {
		if snapshot.Err != nil {
			s.logger.Error("Session snapshot failed",
				zap.String("owner_id", ownerID),
				zap.Error(snapshot.Err))
			s.emitError(persistence("load sessions", snapshot.Err))
			continue
		}

		s.logger.Debug("Session snapshot received",
			zap.String("owner_id", ownerID),
			zap.Int("count", len(snapshot.Sessions)))
		s.apply(generation, snapshot.Sessions)
	}
}

// ApplySnapshot полностью заменяет зеркало переданным списком
func (s *SessionService) ApplySnapshot(sessions []*model.Session) {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	s.apply(generation, sessions)
}

func (s *SessionService) apply(generation uint64, sessions []*model.Session) {
	s.mu.Lock()
	if generation != s.generation {
		// снимок от уже закрытой подписки
		s.mu.Unlock()
		return
	}
	s.sessions = slices.Clone(sessions)
	if s.loaded != nil && !s.isLoaded {
		s.isLoaded = true
		close(s.loaded)
	}
	current := slices.Clone(s.sessions)
	s.mu.Unlock()

	s.listenersMu.Lock()
	handlers := slices.Clone(s.changeHandlers)
	s.listenersMu.Unlock()

	for _, handler := range handlers {
		handler(current)
	}
}

// OnChange регистрирует обработчик, вызываемый после каждого снимка
func (s *SessionService) OnChange(handler func([]*model.Session)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.changeHandlers = append(s.changeHandlers, handler)
}

// OnError регистрирует обработчик ошибок подписки
func (s *SessionService) OnError(handler func(error)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.errorHandlers = append(s.errorHandlers, handler)
}

func (s *SessionService) emitError(err error) {
	s.listenersMu.Lock()
	handlers := slices.Clone(s.errorHandlers)
	s.listenersMu.Unlock()

	for _, handler := range handlers {
		handler(err)
	}
}

// WaitForSnapshot ждёт первый снимок текущей подписки
func (s *SessionService) WaitForSnapshot(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded == nil {
		return ErrNotAuthenticated
	}

	select {
	case <-loaded:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for sessions: %w", ctx.Err())
	}
}

// OwnerID возвращает текущего владельца или пустую строку
func (s *SessionService) OwnerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID
}

// Sessions возвращает копию зеркала, новые записи первыми
func (s *SessionService) Sessions() []*model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions)
}

// Find ищет запись в зеркале по ID
func (s *SessionService) Find(id string) (*model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.ID == id {
			return session, true
		}
	}
	return nil, false
}

// Create проверяет ввод и просит хранилище создать запись.
// Зеркало не трогается: новая запись придёт следующим снимком.
func (s *SessionService) Create(ctx context.Context, in model.SessionInput) (string, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return "", err
	}

	ownerID := s.OwnerID()
	if ownerID == "" {
		return "", ErrNotAuthenticated
	}

	id, err := s.store.Create(ctx, ownerID, in)
	if err != nil {
		s.logger.Error("Failed to create session",
			zap.String("owner_id", ownerID),
			zap.String("student", in.StudentName),
			zap.Error(err))
		return "", persistence("create session", err)
	}

	s.logger.Info("Session created",
		zap.String("owner_id", ownerID),
		zap.String("session_id", id),
		zap.String("student", in.StudentName))

	return id, nil
}

// Update полностью перезаписывает запись id
func (s *SessionService) Update(ctx context.Context, id string, in model.SessionInput) error {
	in, err := normalizeInput(in)
	if err != nil {
		return err
	}

	ownerID := s.OwnerID()
	if ownerID == "" {
		return ErrNotAuthenticated
	}

	if err := s.store.Update(ctx, ownerID, id, in); err != nil {
		s.logger.Error("Failed to update session",
			zap.String("owner_id", ownerID),
			zap.String("session_id", id),
			zap.Error(err))
		return persistence("update session", err)
	}

	s.logger.Info("Session updated",
		zap.String("owner_id", ownerID),
		zap.String("session_id", id))

	return nil
}

// Delete просит хранилище удалить запись id
func (s *SessionService) Delete(ctx context.Context, id string) error {
	ownerID := s.OwnerID()
	if ownerID == "" {
		return ErrNotAuthenticated
	}

	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		s.logger.Error("Failed to delete session",
			zap.String("owner_id", ownerID),
			zap.String("session_id", id),
			zap.Error(err))
		return persistence("delete session", err)
	}

	s.logger.Info("Session deleted",
		zap.String("owner_id", ownerID),
		zap.String("session_id", id))

	return nil
}
