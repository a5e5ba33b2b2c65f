package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == keyboard.NoopData:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case strings.HasPrefix(data, common.ListPage):
		HandleListPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.EditSession):
		HandleEditSession(ctx, b, callback, h)
	case strings.HasPrefix(data, common.DeleteSession):
		HandleDeleteSession(ctx, b, callback, h)
	case data == common.ConfirmDeleteData:
		HandleConfirmDelete(ctx, b, callback, h)
	case data == common.CancelDeleteData:
		HandleCancelDelete(ctx, b, callback, h)
	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Perintah tidak dikenal")
	}
}
