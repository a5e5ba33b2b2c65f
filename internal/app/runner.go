package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_ledger/internal/config"
	"github.com/Freeeeeet/tutor_ledger/internal/controller"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunBot запускает Telegram-бота и слушателя изменений до отмены ctx
func RunBot(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	g, gctx := errgroup.WithContext(ctx)

	workspaces := service.NewWorkspaces(gctx, store.Records, logger)
	defer workspaces.CloseAll()

	botController, err := controller.NewBotController(cfg.TelegramToken, workspaces, logger)
	if err != nil {
		return err
	}
	if err := botController.RegisterHandlers(gctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	logger.Info("Starting tutor ledger bot",
		zap.String("store", cfg.StoreDriver),
		zap.String("app_id", cfg.AppID),
		zap.Int("token_length", len(cfg.TelegramToken)))

	g.Go(func() error {
		return botController.Start(gctx)
	})

	if store.Listener != nil {
		g.Go(func() error {
			return store.Listener.Run(gctx)
		})
	}

	return g.Wait()
}
