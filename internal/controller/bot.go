package controller

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// refreshTimeout ограничивает перерисовку списка после изменения записей
const refreshTimeout = 10 * time.Second

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewBotController создаёт бота и подключает его к рабочим пространствам владельцев
func NewBotController(token string, workspaces *service.Workspaces, logger *zap.Logger) (*BotController, error) {
	stateManager := state.NewManager()

	c := &BotController{
		handlers:        handlers.NewHandlers(workspaces, stateManager, logger),
		callbackHandler: callbacks.NewHandler(workspaces, stateManager, logger),
		stateManager:    stateManager,
		logger:          logger,
	}

	botInstance, err := bot.New(token,
		// Всё, что не совпало с командами, уходит в диалог
		bot.WithDefaultHandler(c.handlers.HandleTextMessage),
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	c.bot = botInstance

	workspaces.OnOpen(c.watchWorkspace)

	return c, nil
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/add", bot.MatchTypeExact, c.handlers.HandleAdd)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/list", bot.MatchTypeExact, c.handlers.HandleList)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/summary", bot.MatchTypeExact, c.handlers.HandleSummary)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/filter", bot.MatchTypePrefix, c.handlers.HandleFilter)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clearfilter", bot.MatchTypeExact, c.handlers.HandleClearFilter)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Mulai"},
		{Command: "add", Description: "➕ Tambah sesi"},
		{Command: "list", Description: "📚 Riwayat sesi"},
		{Command: "summary", Description: "📊 Ringkasan pendapatan"},
		{Command: "filter", Description: "🔎 Saring riwayat"},
		{Command: "clearfilter", Description: "🧹 Hapus filter"},
		{Command: "cancel", Description: "❌ Batalkan"},
		{Command: "help", Description: "❓ Bantuan"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped")
	return nil
}

// watchWorkspace перерисовывает список пользователя при каждом новом снимке
func (c *BotController) watchWorkspace(ownerID string, w *service.Workspace) {
	telegramID, err := strconv.ParseInt(ownerID, 10, 64)
	if err != nil {
		c.logger.Warn("Workspace owner is not a Telegram user", zap.String("owner_id", ownerID))
		return
	}

	w.Sessions.OnChange(func(_ []*model.Session) {
		c.refreshList(telegramID, w)
	})
	w.Sessions.OnError(func(err error) {
		c.notifyError(telegramID, err)
	})
}

// refreshList обновляет последнее сообщение со списком, если оно есть
func (c *BotController) refreshList(telegramID int64, w *service.Workspace) {
	messageID, page, ok := c.stateManager.ListMessage(telegramID)
	if !ok {
		return
	}
	if w.Editor.DeleteState().Mode == model.DeleteModePending {
		// Сообщение сейчас показывает подтверждение удаления
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	text, kb := common.BuildListScreen(w.View(), page)
	_, err := c.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      telegramID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil && !common.IsMessageNotModifiedError(err) {
		c.logger.Warn("Failed to refresh session list",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

// notifyError сообщает пользователю, что список не удалось загрузить
func (c *BotController) notifyError(telegramID int64, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	c.logger.Warn("Session subscription error",
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))

	_, sendErr := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: telegramID,
		Text:   "❌ Gagal memuat sesi. Coba lagi.",
	})
	if sendErr != nil {
		c.logger.Error("Failed to send error message",
			zap.Int64("telegram_id", telegramID),
			zap.Error(sendErr))
	}
}
