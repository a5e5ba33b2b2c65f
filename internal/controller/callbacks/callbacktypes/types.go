package callbacktypes

import (
	"github.com/Freeeeeet/tutor_ledger/internal/controller/state"
	"github.com/Freeeeeet/tutor_ledger/internal/service"
	"go.uber.org/zap"
)

// WorkspaceOpener выдаёт рабочее пространство владельца
type WorkspaceOpener interface {
	Open(ownerID string) (*service.Workspace, error)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Workspaces   WorkspaceOpener
	StateManager *state.Manager
	Logger       *zap.Logger
}
