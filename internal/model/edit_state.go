package model

import "github.com/shopspring/decimal"

type EditMode string

const (
	EditModeCreating EditMode = "creating" // Форма создаёт новую запись
	EditModeEditing  EditMode = "editing"  // Форма перезаписывает TargetID
)

// EditState режим формы: создание или редактирование конкретной записи
type EditState struct {
	Mode     EditMode `json:"mode"`
	TargetID string   `json:"target_id,omitempty"`
}

// Creating начальное состояние формы
func Creating() EditState {
	return EditState{Mode: EditModeCreating}
}

// Editing состояние редактирования записи id
func Editing(id string) EditState {
	return EditState{Mode: EditModeEditing, TargetID: id}
}

// IsEditing true если форма редактирует запись id
func (s EditState) IsEditing(id string) bool {
	return s.Mode == EditModeEditing && s.TargetID == id
}

type DeleteMode string

const (
	DeleteModeIdle    DeleteMode = "idle"    // Удаление не запрошено
	DeleteModePending DeleteMode = "pending" // Ждём подтверждения
)

// DeleteState состояние подтверждения удаления
type DeleteState struct {
	Mode     DeleteMode `json:"mode"`
	TargetID string     `json:"target_id,omitempty"`
}

// Idle начальное состояние удаления
func Idle() DeleteState {
	return DeleteState{Mode: DeleteModeIdle}
}

// PendingConfirmation удаление id ждёт подтверждения
func PendingConfirmation(id string) DeleteState {
	return DeleteState{Mode: DeleteModePending, TargetID: id}
}

// View всё, что нужно отрисовщику для одного владельца
type View struct {
	OwnerID     string
	Sessions    []*Session // отфильтрованный список
	Filter      Filter
	TotalFee    decimal.Decimal // по всем записям, без фильтра
	Students    []string
	Topics      []string
	EditState   EditState
	DeleteState DeleteState
	Form        SessionInput
}
