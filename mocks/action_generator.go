package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
)

type ActionGenerator struct {
	mock.Mock
}

func (g *ActionGenerator) GenerateActions(ctx context.Context, violations []models.Violation) (
	map[string][]models.RequiredAction, error,
) {
	args := g.Called(ctx, violations)
	return args.Get(0).(map[string][]models.RequiredAction), args.Error(1)
}
