package handlers

import (
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
)

// stepForField шаг диалога, на котором вводится поле формы
func stepForField(field string) state.UserState {
	switch field {
	case service.FieldDate:
		return state.StateFormDate
	case service.FieldStudentName:
		return state.StateFormStudent
	case service.FieldTopic:
		return state.StateFormTopic
	case service.FieldDuration:
		return state.StateFormDuration
	default:
		return state.StateFormFee
	}
}

// successMessage сообщение после сохранения формы
func successMessage(result service.SaveResult) string {
	if result.Created {
		return "✅ Sesi berhasil ditambahkan!"
	}
	return "✅ Sesi berhasil diperbarui!"
}
