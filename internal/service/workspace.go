package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"go.uber.org/zap"
)

// Workspace всё состояние одного владельца: зеркало, форма и фильтр
type Workspace struct {
	Sessions *SessionService
	Editor   *Editor

	mu     sync.RWMutex
	filter model.Filter
}

func NewWorkspace(store RecordStore, logger *zap.Logger) *Workspace {
	sessions := NewSessionService(store, logger)
	return &Workspace{
		Sessions: sessions,
		Editor:   NewEditor(sessions, logger),
	}
}

// SetFilter заменяет текущий фильтр списка
func (w *Workspace) SetFilter(filter model.Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = filter
}

// Filter возвращает текущий фильтр
func (w *Workspace) Filter() model.Filter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter
}

// ClearFilters снимает все условия
func (w *Workspace) ClearFilters() {
	w.SetFilter(model.Filter{})
}

// BeginEdit начинает редактирование записи из зеркала
func (w *Workspace) BeginEdit(id string) (*model.Session, error) {
	session, ok := w.Sessions.Find(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	w.Editor.BeginEdit(session)
	return session, nil
}

// View пересчитывает производные представления из текущего зеркала.
// Список фильтруется, сумма и подсказки считаются по всем записям.
func (w *Workspace) View() model.View {
	all := w.Sessions.Sessions()
	filter := w.Filter()

	return model.View{
		OwnerID:     w.Sessions.OwnerID(),
		Sessions:    ApplyFilter(all, filter),
		Filter:      filter,
		TotalFee:    TotalFee(all),
		Students:    DistinctStudents(all),
		Topics:      DistinctTopics(all),
		EditState:   w.Editor.State(),
		DeleteState: w.Editor.DeleteState(),
		Form:        w.Editor.Form(),
	}
}

// Summary сводка по всем записям владельца
func (w *Workspace) Summary() model.Summary {
	return Summarize(w.Sessions.Sessions())
}

// Workspaces реестр рабочих пространств: не больше одной подписки на владельца
type Workspaces struct {
	ctx    context.Context
	store  RecordStore
	logger *zap.Logger

	mu    sync.Mutex
	items map[string]*Workspace
	hooks []func(ownerID string, w *Workspace)
}

// NewWorkspaces подписки живут, пока не отменён ctx
func NewWorkspaces(ctx context.Context, store RecordStore, logger *zap.Logger) *Workspaces {
	return &Workspaces{
		ctx:    ctx,
		store:  store,
		logger: logger,
		items:  make(map[string]*Workspace),
	}
}

// OnOpen регистрирует обработчик нового пространства.
// Вызывается под блокировкой реестра до открытия подписки,
// так что обработчики снимков увидят и первый.
func (ws *Workspaces) OnOpen(hook func(ownerID string, w *Workspace)) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.hooks = append(ws.hooks, hook)
}

// Open возвращает пространство владельца, при первом обращении открывает подписку
func (ws *Workspaces) Open(ownerID string) (*Workspace, error) {
	if ownerID == "" {
		return nil, ErrNotAuthenticated
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if w, ok := ws.items[ownerID]; ok {
		return w, nil
	}

	w := NewWorkspace(ws.store, ws.logger)
	for _, hook := range ws.hooks {
		hook(ownerID, w)
	}
	if err := w.Sessions.Establish(ws.ctx, ownerID); err != nil {
		return nil, err
	}
	ws.items[ownerID] = w

	ws.logger.Info("Workspace opened", zap.String("owner_id", ownerID))
	return w, nil
}

// Get возвращает уже открытое пространство
func (ws *Workspaces) Get(ownerID string) (*Workspace, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.items[ownerID]
	return w, ok
}

// Close закрывает подписку владельца
func (ws *Workspaces) Close(ownerID string) {
	ws.mu.Lock()
	w, ok := ws.items[ownerID]
	delete(ws.items, ownerID)
	ws.mu.Unlock()

	if ok {
		w.Sessions.Teardown()
	}
}

// CloseAll закрывает все подписки
func (ws *Workspaces) CloseAll() {
	ws.mu.Lock()
	items := ws.items
	ws.items = make(map[string]*Workspace)
	ws.mu.Unlock()

	for _, w := range items {
		w.Sessions.Teardown()
	}
}
