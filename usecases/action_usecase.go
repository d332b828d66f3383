package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
	"github.com/modelproof/modelproof-backend/usecases/remediation"
)

type ActionUsecase struct {
	executorFactory          executor_factory.ExecutorFactory
	transactionFactory       executor_factory.TransactionFactory
	requiredActionRepository repositories.RequiredActionRepository
	generator                remediation.Generator
}

func NewActionUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	requiredActionRepository repositories.RequiredActionRepository,
	generator remediation.Generator,
) ActionUsecase {
	return ActionUsecase{
		executorFactory:          executorFactory,
		transactionFactory:       transactionFactory,
		requiredActionRepository: requiredActionRepository,
		generator:                generator,
	}
}

// GenerateActions derives, persists and returns the remediation actions of a
// batch of violations, keyed by violation id. All actions of the batch are
// inserted in one transaction.
func (uc ActionUsecase) GenerateActions(ctx context.Context,
	violations []models.Violation,
) (map[string][]models.RequiredAction, error) {
	actionsByViolation := uc.generator.Generate(violations)

	var all []models.RequiredAction
	for violationId, actions := range actionsByViolation {
		for i := range actions {
			actions[i].Id = uuid.NewString()
			all = append(all, actions[i])
		}
		actionsByViolation[violationId] = actions
	}
	if len(all) == 0 {
		return actionsByViolation, nil
	}

	err := uc.transactionFactory.Transaction(ctx, func(tx repositories.Transaction) error {
		return uc.requiredActionRepository.BatchInsertRequiredActions(ctx, tx, all)
	})
	if err != nil {
		return nil, err
	}
	return actionsByViolation, nil
}

// ListActionsOfViolation returns the open and completed actions of one
// violation, most urgent first.
func (uc ActionUsecase) ListActionsOfViolation(ctx context.Context,
	violationId string,
) ([]models.RequiredAction, error) {
	return uc.requiredActionRepository.ListActionsOfViolation(ctx,
		uc.executorFactory.NewExecutor(), violationId)
}
