package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const filterUsage = "Cara pakai:\n" +
	"/filter student Budi\n" +
	"/filter topic aljabar\n" +
	"/filter from 2024-01-01\n" +
	"/filter to 2024-01-31\n" +
	"Kosongkan nilai untuk menghapus satu kondisi, misalnya /filter topic"

var errUnknownFilterField = errors.New("unknown filter field")

// HandleFilter обрабатывает /filter <поле> <значение>
func (h *Handlers) HandleFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/filter"))
	if args == "" {
		h.sendMessage(ctx, b, chatID, filterUsage)
		return
	}

	filter, err := applyFilterArgs(w.Filter(), args)
	if err != nil {
		h.logger.Debug("Filter rejected",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("args", args),
			zap.Error(err))
		if errors.Is(err, errUnknownFilterField) {
			h.sendError(ctx, b, chatID, "❌ Kolom filter tidak dikenal.\n\n"+filterUsage)
			return
		}
		h.sendError(ctx, b, chatID, "❌ Tanggal tidak valid. Gunakan format YYYY-MM-DD.")
		return
	}

	w.SetFilter(filter)
	h.HandleList(ctx, b, update)
}

// HandleClearFilter обрабатывает /clearfilter
func (h *Handlers) HandleClearFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	w, ok := h.requireWorkspace(ctx, b, update)
	if !ok {
		return
	}

	w.ClearFilters()
	h.HandleList(ctx, b, update)
}

// applyFilterArgs меняет одно условие фильтра: "student Budi", "from 2024-01-01".
// Пустое значение снимает условие.
func applyFilterArgs(filter model.Filter, args string) (model.Filter, error) {
	field, value, _ := strings.Cut(strings.TrimSpace(args), " ")
	value = strings.TrimSpace(value)

	switch strings.ToLower(field) {
	case "student", "siswa":
		filter.StudentNameContains = value
	case "topic", "topik":
		filter.TopicContains = value
	case "from", "dari":
		day, err := parseFilterDate(value)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = day
	case "to", "sampai":
		day, err := parseFilterDate(value)
		if err != nil {
			return filter, err
		}
		filter.DateTo = day
	default:
		return filter, errUnknownFilterField
	}

	return filter, nil
}

func parseFilterDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := model.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
