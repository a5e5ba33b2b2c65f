package keyboard

import "github.com/go-telegram/bot/models"

// ConfirmButton создаёт кнопку подтверждения
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Ya, hapus", callbackData)
}

// CancelButton создаёт кнопку отмены
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Batal", callbackData)
}

// YesNo клавиатура из одного ряда Да/Нет
func YesNo(yesCallback, noCallback string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(ConfirmButton(yesCallback), CancelButton(noCallback)).
		Build()
}
