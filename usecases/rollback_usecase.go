package usecases

import (
	"context"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/usecases/rollback"
	"github.com/modelproof/modelproof-backend/utils"
)

// RollbackUsecase is the outward-facing surface of the rollback controller.
type RollbackUsecase struct {
	controller *rollback.Controller
}

func NewRollbackUsecase(controller *rollback.Controller) RollbackUsecase {
	return RollbackUsecase{controller: controller}
}

func (uc RollbackUsecase) TriggerRollback(ctx context.Context,
	input rollback.TriggerRollbackInput,
) (models.RollbackExecution, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "RollbackUsecase.TriggerRollback")
	defer span.End()

	return uc.controller.TriggerRollback(ctx, input)
}

func (uc RollbackUsecase) ApproveRollback(ctx context.Context,
	rollbackId, approverId, approverRole string,
) (models.RollbackExecution, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "RollbackUsecase.ApproveRollback")
	defer span.End()

	return uc.controller.ApproveRollback(ctx, rollbackId, approverId, approverRole)
}

func (uc RollbackUsecase) ShouldTriggerRollback(ctx context.Context,
	input rollback.TriggerRollbackInput,
) (bool, error) {
	return uc.controller.ShouldTriggerRollback(ctx, input)
}
