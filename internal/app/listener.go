package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// changeSource источник уведомлений об изменениях записей
type changeSource interface {
	Listen(ctx context.Context) error
}

// Listener держит LISTEN-соединение и переподключает его после обрывов
type Listener struct {
	source     changeSource
	logger     *zap.Logger
	retryDelay time.Duration
}

// NewListener создаёт слушателя изменений
func NewListener(source changeSource, logger *zap.Logger) *Listener {
	return &Listener{
		source:     source,
		logger:     logger,
		retryDelay: 5 * time.Second,
	}
}

// Run слушает до отмены ctx; ошибки соединения не прерывают работу
func (l *Listener) Run(ctx context.Context) error {
	l.logger.Info("Starting session change listener")

	for {
		err := l.source.Listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info("Session change listener stopped")
			return nil
		}
		if err != nil {
			l.logger.Error("Session change listener failed",
				zap.Error(err),
				zap.Duration("retry_in", l.retryDelay))
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			l.logger.Info("Session change listener stopped")
			return nil
		}
	}
}
