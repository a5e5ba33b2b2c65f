package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAdd начинает диалог создания записи
func (h *Handlers) HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID

	// Незавершённое редактирование отменяется
	w.Editor.CancelEdit()
	h.stateManager.SetState(telegramID, state.StateFormDate)

	h.logger.Info("Starting session creation", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.BuildFormPrompt(state.StateFormDate, w.View()))
}

// handleFormStep принимает ответ на текущий шаг формы
func (h *Handlers) handleFormStep(ctx context.Context, b *bot.Bot, update *models.Update, step state.UserState) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	form, err := applyFormAnswer(w.Editor.Form(), step, update.Message.Text)
	if err != nil {
		h.logger.Debug("Form answer rejected",
			zap.Int64("telegram_id", telegramID),
			zap.String("step", string(step)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	w.Editor.SetForm(form)

	next := state.NextFormStep(step)
	if next != state.StateNone {
		h.stateManager.SetState(telegramID, next)
		h.sendMessage(ctx, b, chatID, common.BuildFormPrompt(next, w.View()))
		return
	}

	h.saveForm(ctx, b, update, w)
}

// saveForm сохраняет заполненную форму
func (h *Handlers) saveForm(ctx context.Context, b *bot.Bot, update *models.Update, w *service.Workspace) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	result, err := w.Editor.Save(ctx)
	if err != nil {
		if field, ok := service.IsValidation(err); ok {
			// Возвращаемся к шагу с неверным полем
			step := stepForField(field)
			h.stateManager.SetState(telegramID, step)
			h.sendError(ctx, b, chatID, common.FieldErrorMessage(field))
			h.sendMessage(ctx, b, chatID, common.BuildFormPrompt(step, w.View()))
			return
		}

		h.logger.Error("Failed to save session form",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Terjadi kesalahan saat menyimpan sesi. Kirim - untuk mencoba lagi atau /cancel.")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.logger.Info("Session form saved",
		zap.Int64("telegram_id", telegramID),
		zap.String("session_id", result.ID),
		zap.Bool("created", result.Created))

	h.sendMessage(ctx, b, chatID, successMessage(result)+"\n\nLihat riwayat: /list")
}

// applyFormAnswer записывает ответ пользователя в поле формы текущего шага.
// Ответ "-" оставляет текущее значение, если оно есть.
func applyFormAnswer(form model.SessionInput, step state.UserState, text string) (model.SessionInput, error) {
	keep := text == common.KeepValue

	var err error
	switch step {
	case state.StateFormDate:
		if keep {
			text = form.Date
		}
		form.Date, err = service.ParseDate(text)
	case state.StateFormStudent:
		if keep {
			text = form.StudentName
		}
		form.StudentName, err = service.RequireText(service.FieldStudentName, text)
	case state.StateFormTopic:
		if keep {
			text = form.Topic
		}
		form.Topic, err = service.RequireText(service.FieldTopic, text)
	case state.StateFormDuration:
		if keep {
			if form.Duration <= 0 {
				return form, &service.ValidationError{Field: service.FieldDuration, Reason: "is required"}
			}
			return form, nil
		}
		form.Duration, err = service.ParseDuration(text)
	case state.StateFormFee:
		if keep {
			if form.Fee.IsNegative() {
				return form, &service.ValidationError{Field: service.FieldFee, Reason: "must not be negative"}
			}
			return form, nil
		}
		form.Fee, err = service.ParseFee(text)
	}

	return form, err
}
