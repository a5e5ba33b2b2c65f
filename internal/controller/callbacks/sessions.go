package callbacks

import (
	"context"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleListPage переключает страницу списка
func HandleListPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithWorkspace(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParsePageFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse list page")
			return
		}

		showList(hc, page)
		hc.Answer("")
	})
}

// HandleEditSession начинает редактирование записи и задаёт первый вопрос диалога
func HandleEditSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithWorkspace(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse session id")
			return
		}

		session, err := hc.Workspace.BeginEdit(id)
		if err != nil {
			common.HandleError(hc, err, "begin edit")
			return
		}

		h.Logger.Info("Editing session",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("session_id", session.ID))

		hc.SetState(state.StateFormDate)
		hc.Answer("✏️ Edit sesi")

		if err := hc.SendMessage(common.BuildFormPrompt(state.StateFormDate, hc.Workspace.View()), nil); err != nil {
			h.Logger.Error("Failed to send form prompt", zap.Error(err))
		}
	})
}

// HandleDeleteSession просит подтвердить удаление записи
func HandleDeleteSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithWorkspace(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse session id")
			return
		}

		session, ok := hc.Workspace.Sessions.Find(id)
		if !ok {
			hc.AnswerAlert("❌ Sesi tidak ditemukan")
			return
		}

		if err := hc.Workspace.Editor.RequestDelete(session.ID); err != nil {
			common.HandleError(hc, err, "request delete")
			return
		}

		text, kb := common.BuildDeleteConfirmScreen(session)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmDelete удаляет запись, ожидающую подтверждения
func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithWorkspace(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := hc.Workspace.Editor.ConfirmDelete(ctx)
		if err != nil {
			hc.Handler.Logger.Error("Failed to delete session",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
			hc.AnswerAlert(common.DeleteErrorMessage(err))
			return
		}

		h.Logger.Info("Session deleted via bot",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("session_id", id))

		hc.AnswerAlert("✅ Sesi berhasil dihapus!")
		showList(hc, currentPage(hc))
	})
}

// HandleCancelDelete отменяет запрос на удаление
func HandleCancelDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithWorkspace(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Workspace.Editor.CancelDeleteRequest()
		showList(hc, currentPage(hc))
		hc.Answer("Dibatalkan")
	})
}

func currentPage(hc *common.HandlerContext) int {
	_, page, _ := hc.Handler.StateManager.ListMessage(hc.TelegramID)
	return page
}

// showList перерисовывает сообщение callback списком записей
func showList(hc *common.HandlerContext, page int) {
	text, kb := common.BuildListScreen(hc.Workspace.View(), page)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render session list", zap.Error(err))
		return
	}
	if hc.Message != nil {
		hc.Handler.StateManager.SetListMessage(hc.TelegramID, hc.Message.ID, page)
	}
}
