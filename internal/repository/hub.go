package repository

import (
	"context"
	"sync"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"go.uber.org/zap"
)

// Hub рассылает сигналы "коллекция изменилась" подписчикам одного ключа.
// Сигналы схлопываются: подписчик, не успевший перечитать список, получит один.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan struct{}]struct{}),
	}
}

// Register подписывает на ключ; возвращает канал сигналов и функцию отписки
func (h *Hub) Register(key string) (<-chan struct{}, func()) {
	signal := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan struct{}]struct{})
	}
	h.subs[key][signal] = struct{}{}
	h.mu.Unlock()

	unregister := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[key], signal)
		if len(h.subs[key]) == 0 {
			delete(h.subs, key)
		}
	}

	return signal, unregister
}

// Notify будит всех подписчиков ключа
func (h *Hub) Notify(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for signal := range h.subs[key] {
		select {
		case signal <- struct{}{}:
		default:
			// сигнал уже ждёт обработки
		}
	}
}

// NotifyAll будит всех подписчиков, например после потери уведомлений
func (h *Hub) NotifyAll() {
	h.mu.Lock()
	keys := make([]string, 0, len(h.subs))
	for key := range h.subs {
		keys = append(keys, key)
	}
	h.mu.Unlock()

	for _, key := range keys {
		h.Notify(key)
	}
}

// Subscribers количество подписчиков ключа
func (h *Hub) Subscribers(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}

// loadFunc читает полный список записей владельца
type loadFunc func(ctx context.Context) ([]*model.Session, error)

// subscribe отдаёт снимок сразу и после каждого сигнала хаба, пока не отменён ctx
func subscribe(ctx context.Context, hub *Hub, key, ownerID string, load loadFunc, logger *zap.Logger) <-chan model.Snapshot {
	// Регистрируемся до первого чтения, чтобы не пропустить изменение
	signal, unregister := hub.Register(key)
	out := make(chan model.Snapshot)

	send := func() bool {
		sessions, err := load(ctx)
		if ctx.Err() != nil {
			return false
		}
		if err != nil {
			logger.Error("Failed to load sessions snapshot",
				zap.String("owner_id", ownerID),
				zap.Error(err))
		}

		select {
		case out <- model.Snapshot{OwnerID: ownerID, Sessions: sessions, Err: err}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		defer unregister()

		if !send() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				if !send() {
					return
				}
			}
		}
	}()

	return out
}
