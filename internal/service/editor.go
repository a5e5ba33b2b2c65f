package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"go.uber.org/zap"
)

// sessionWriter операции записи, которые нужны форме
type sessionWriter interface {
	Create(ctx context.Context, in model.SessionInput) (string, error)
	Update(ctx context.Context, id string, in model.SessionInput) error
	Delete(ctx context.Context, id string) error
}

// SaveResult итог успешного сохранения формы
type SaveResult struct {
	ID      string
	Created bool // false - запись обновлена
}

// Editor форма записи и два независимых автомата:
// создание/редактирование и подтверждение удаления.
type Editor struct {
	writer sessionWriter
	logger *zap.Logger
	today  func() string

	mu          sync.Mutex
	editState   model.EditState
	deleteState model.DeleteState
	form        model.SessionInput
}

func NewEditor(writer sessionWriter, logger *zap.Logger) *Editor {
	e := &Editor{
		writer:      writer,
		logger:      logger,
		today:       model.Today,
		editState:   model.Creating(),
		deleteState: model.Idle(),
	}
	e.resetForm()
	return e
}

// resetForm значения по умолчанию: сегодняшняя дата, остальное пусто
func (e *Editor) resetForm() {
	e.form = model.SessionInput{Date: e.today()}
}

// State текущий режим формы
func (e *Editor) State() model.EditState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editState
}

// DeleteState текущее состояние подтверждения удаления
func (e *Editor) DeleteState() model.DeleteState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteState
}

// Form текущие значения формы
func (e *Editor) Form() model.SessionInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm запоминает введённые пользователем значения
func (e *Editor) SetForm(in model.SessionInput) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = in
}

// BeginEdit переводит форму в редактирование записи и заполняет её значениями
func (e *Editor) BeginEdit(session *model.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.editState = model.Editing(session.ID)
	e.form = session.Input()
}

// CancelEdit возвращает форму в режим создания
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.editState = model.Creating()
	e.resetForm()
}

// Save создаёт или обновляет запись в зависимости от режима формы.
// При ошибке режим и введённые значения сохраняются.
func (e *Editor) Save(ctx context.Context) (SaveResult, error) {
	e.mu.Lock()
	state := e.editState
	form := e.form
	e.mu.Unlock()

	var result SaveResult
	if state.Mode == model.EditModeEditing {
		if err := e.writer.Update(ctx, state.TargetID, form); err != nil {
			return SaveResult{}, err
		}
		result = SaveResult{ID: state.TargetID}
	} else {
		id, err := e.writer.Create(ctx, form)
		if err != nil {
			return SaveResult{}, err
		}
		result = SaveResult{ID: id, Created: true}
	}

	e.mu.Lock()
	if e.editState == state {
		e.editState = model.Creating()
		e.resetForm()
	}
	e.mu.Unlock()

	return result, nil
}

// RequestDelete просит подтверждение удаления записи id
func (e *Editor) RequestDelete(id string) error {
	if id == "" {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleteState = model.PendingConfirmation(id)
	return nil
}

// ConfirmDelete удаляет запись, ожидающую подтверждения.
// При ошибке запрос остаётся в ожидании.
func (e *Editor) ConfirmDelete(ctx context.Context) (string, error) {
	e.mu.Lock()
	pending := e.deleteState
	e.mu.Unlock()

	if pending.Mode != model.DeleteModePending {
		return "", ErrNoPendingDelete
	}

	if err := e.writer.Delete(ctx, pending.TargetID); err != nil {
		e.logger.Warn("Delete confirmation failed, keeping request pending",
			zap.String("session_id", pending.TargetID),
			zap.Error(err))
		return "", err
	}

	e.mu.Lock()
	if e.deleteState == pending {
		e.deleteState = model.Idle()
	}
	if e.editState.IsEditing(pending.TargetID) {
		e.editState = model.Creating()
		e.resetForm()
	}
	e.mu.Unlock()

	return pending.TargetID, nil
}

// CancelDeleteRequest отменяет запрос на удаление без обращения к хранилищу
func (e *Editor) CancelDeleteRequest() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deleteState = model.Idle()
}
