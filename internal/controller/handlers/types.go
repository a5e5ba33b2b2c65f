package handlers

import (
	"github.com/Freeeeeet/tutor_ledger/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	workspaces   callbacktypes.WorkspaceOpener
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	workspaces callbacktypes.WorkspaceOpener,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		workspaces:   workspaces,
		stateManager: stateManager,
		logger:       logger,
	}
}
