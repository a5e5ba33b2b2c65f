package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_ledger/internal/app"
	"github.com/Freeeeeet/tutor_ledger/internal/model"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
)

// snapshotTimeout сколько ждать первый список записей
const snapshotTimeout = 15 * time.Second

var errAmbiguousID = errors.New("ambiguous session id")

// ownerID владелец из флага или конфига
func ownerID() string {
	if ownerFlag != "" {
		return ownerFlag
	}
	return cfg.Owner
}

// openWorkspace открывает хранилище, подписывается на записи владельца
// и ждёт первый снимок. release освобождает всё открытое.
func openWorkspace(ctx context.Context) (w *service.Workspace, release func(), err error) {
	owner := ownerID()
	if owner == "" {
		return nil, nil, fmt.Errorf("%w: set --owner or LEDGER_OWNER", service.ErrNotAuthenticated)
	}

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	w = service.NewWorkspace(store.Records, logger)

	waitCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	w.Sessions.OnError(func(err error) {
		cancel(err)
	})

	if err := w.Sessions.Establish(ctx, owner); err != nil {
		store.Close()
		return nil, nil, err
	}

	release = func() {
		w.Sessions.Teardown()
		store.Close()
	}

	waitCtx, cancelTimeout := context.WithTimeout(waitCtx, snapshotTimeout)
	defer cancelTimeout()

	if err := w.Sessions.WaitForSnapshot(waitCtx); err != nil {
		release()
		if cause := context.Cause(waitCtx); cause != nil && !errors.Is(cause, context.Canceled) && !errors.Is(cause, context.DeadlineExceeded) {
			return nil, nil, cause
		}
		return nil, nil, err
	}

	return w, release, nil
}

// resolveSession ищет запись по полному ID или однозначному префиксу
func resolveSession(sessions []*model.Session, id string) (*model.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, service.ErrSessionNotFound
	}

	var found *model.Session
	for _, session := range sessions {
		if session.ID == id {
			return session, nil
		}
		if strings.HasPrefix(session.ID, id) {
			if found != nil {
				return nil, fmt.Errorf("%w: %q matches more than one session", errAmbiguousID, id)
			}
			found = session
		}
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	return found, nil
}
