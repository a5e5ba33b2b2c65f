package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Daftar perintah:\n\n" +
	"/add - Tambah sesi baru\n" +
	"/list - Riwayat sesi (edit dan hapus lewat tombol)\n" +
	"/summary - Ringkasan pendapatan\n" +
	"/filter student|topic|from|to nilai - Saring riwayat\n" +
	"/clearfilter - Hapus semua filter\n" +
	"/cancel - Batalkan pengisian atau edit\n" +
	"/help - Tampilkan bantuan ini"

// HandleStart обрабатывает команду /start: открывает записи пользователя
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireWorkspace(ctx, b, update); !ok {
		return
	}

	user := update.Message.From

	h.logger.Info("User started bot",
		zap.Int64("telegram_id", user.ID),
		zap.String("username", user.Username))

	welcomeText := fmt.Sprintf(
		"👋 Halo, %s!\n\n"+
			"Bot ini mencatat sesi mengajar: tanggal, siswa, topik, durasi, dan biaya.\n\n%s",
		html.EscapeString(user.FirstName),
		helpText,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleList обрабатывает команду /list
func (h *Handlers) HandleList(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	text, kb := common.BuildListScreen(w.View(), 0)

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send session list",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.Error(err))
		return
	}

	// Это сообщение будет обновляться при каждом изменении записей
	h.stateManager.SetListMessage(update.Message.From.ID, msg.ID, 0)
}

// HandleSummary обрабатывает команду /summary
func (h *Handlers) HandleSummary(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildSummaryText(w.Summary()))
}

// HandleCancel обрабатывает команду /cancel - отмена диалога, редактирования и удаления
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	w.Editor.CancelEdit()
	w.Editor.CancelDeleteRequest()
	h.stateManager.ClearState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Tidak ada yang perlu dibatalkan.")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Dibatalkan.\n\nLihat perintah lain di /help")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	if strings.HasPrefix(update.Message.Text, "/") {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Perintah tidak dikenal.\n\n"+helpText)
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateFormDate, state.StateFormStudent, state.StateFormTopic, state.StateFormDuration, state.StateFormFee:
		h.handleFormStep(ctx, b, update, currentState)
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Gunakan /add untuk mencatat sesi atau /help untuk bantuan.")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
