package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		if state == StateNone {
			return
		}
		userData = &UserData{}
		sm.states[telegramID] = userData
	}
	userData.State = state

	if userData.State == StateNone && userData.ListMessageID == 0 {
		// Пустую запись не храним
		delete(sm.states, telegramID)
	}
}

// ListMessage последнее сообщение со списком записей и его страница
func (sm *Manager) ListMessage(telegramID int64) (messageID, page int, ok bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists && userData.ListMessageID != 0 {
		return userData.ListMessageID, userData.ListPage, true
	}
	return 0, 0, false
}

// SetListMessage запоминает сообщение со списком записей
func (sm *Manager) SetListMessage(telegramID int64, messageID, page int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.states[telegramID]; !exists {
		sm.states[telegramID] = &UserData{}
	}
	sm.states[telegramID].ListMessageID = messageID
	sm.states[telegramID].ListPage = page
}

// ClearState сбрасывает шаг диалога, сообщение со списком остаётся
func (sm *Manager) ClearState(telegramID int64) {
	sm.SetState(telegramID, StateNone)
}

// Forget удаляет все данные пользователя
func (sm *Manager) Forget(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
