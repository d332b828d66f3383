package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/modelproof/modelproof-backend/mocks"
	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/clock"
	"github.com/modelproof/modelproof-backend/usecases/policy_eval"
)

type PolicyUsecaseTestSuite struct {
	suite.Suite
	executorFactory       *mocks.ExecutorFactory
	transactionFactory    *mocks.TransactionFactory
	executorMock          *mocks.Executor
	transactionMock       *mocks.Transaction
	aiSystemRepository    *mocks.AISystemRepository
	policyRepository      *mocks.PolicyRepository
	violationRepository   *mocks.ViolationRepository
	enforcementRepository *mocks.EnforcementRepository

	now time.Time
}

func (suite *PolicyUsecaseTestSuite) SetupTest() {
	suite.executorMock = new(mocks.Executor)
	suite.transactionMock = new(mocks.Transaction)
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.transactionFactory = &mocks.TransactionFactory{TxMock: suite.transactionMock}
	suite.aiSystemRepository = new(mocks.AISystemRepository)
	suite.policyRepository = new(mocks.PolicyRepository)
	suite.violationRepository = new(mocks.ViolationRepository)
	suite.enforcementRepository = new(mocks.EnforcementRepository)
	suite.now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.executorFactory.On("NewExecutor").Return(suite.executorMock)
}

func (suite *PolicyUsecaseTestSuite) makeUsecase() PolicyUsecase {
	return NewPolicyUsecase(
		suite.executorFactory,
		suite.transactionFactory,
		suite.aiSystemRepository,
		suite.policyRepository,
		suite.violationRepository,
		suite.enforcementRepository,
		policy_eval.NewEvaluator(),
		nil,
		clock.NewMock(suite.now),
		time.Hour,
	)
}

func (suite *PolicyUsecaseTestSuite) system() models.AISystem {
	return models.AISystem{
		Id:             "sys-1",
		OrganizationId: "org-1",
		Department:     "Radiology",
		RiskLevel:      models.RiskMedium,
	}
}

func (suite *PolicyUsecaseTestSuite) prohibitedPolicy() models.Policy {
	return models.Policy{
		Id:             "policy-1",
		OrganizationId: "org-1",
		Name:           "no-radiology-automation",
		Type:           models.PolicyProhibited,
		Scope:          models.ScopeAll,
		Active:         true,
		Enforcement: models.EnforcementConfig{
			Actions: []models.EnforcementAction{models.EnforcementCreateAlert},
		},
	}
}

func (suite *PolicyUsecaseTestSuite) TestEvaluatePolicies_allowedWhenNoPolicies() {
	suite.aiSystemRepository.On("GetAISystemById", mock.Anything, suite.executorMock, "sys-1").
		Return(suite.system(), nil)
	suite.policyRepository.On("ListActivePoliciesOfOrganization", mock.Anything, suite.executorMock, "org-1").
		Return([]models.Policy{}, nil)

	evaluation, err := suite.makeUsecase().EvaluatePolicies(context.Background(), "sys-1", "deploy")

	suite.NoError(err)
	suite.True(evaluation.Allowed)
	suite.violationRepository.AssertNotCalled(suite.T(), "CreateViolation",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PolicyUsecaseTestSuite) TestEvaluatePolicies_persistsViolationAndEnforcementLog() {
	suite.aiSystemRepository.On("GetAISystemById", mock.Anything, suite.executorMock, "sys-1").
		Return(suite.system(), nil)
	suite.policyRepository.On("ListActivePoliciesOfOrganization", mock.Anything, suite.executorMock, "org-1").
		Return([]models.Policy{suite.prohibitedPolicy()}, nil)

	suite.transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)
	suite.violationRepository.On("CreateViolation", mock.Anything, suite.transactionMock,
		mock.MatchedBy(func(violation models.Violation) bool {
			return violation.Severity == models.SeverityCritical &&
				violation.Source == models.ViolationSourcePolicy
		})).
		Return(nil)
	suite.enforcementRepository.On("CreateEnforcementLogEntry", mock.Anything, suite.transactionMock,
		mock.MatchedBy(func(entry models.EnforcementLogEntry) bool {
			return entry.PolicyId == "policy-1" && entry.Action == "deploy" &&
				entry.ViolationId != nil
		})).
		Return(nil)

	// enforcement side effect: alert creation after commit. The dedup bound is
	// derived from the injected clock, not from wall time.
	suite.enforcementRepository.On("HasRecentGovernanceAlert", mock.Anything, suite.executorMock,
		"sys-1", models.AlertSourcePolicy, mock.Anything, suite.now.Add(-time.Hour)).
		Return(false, nil)
	suite.enforcementRepository.On("CreateGovernanceAlert", mock.Anything, suite.executorMock,
		mock.MatchedBy(func(alert models.GovernanceAlert) bool {
			return alert.AISystemId == "sys-1" && alert.Severity == models.SeverityCritical
		})).
		Return(nil)

	evaluation, err := suite.makeUsecase().EvaluatePolicies(context.Background(), "sys-1", "deploy")

	suite.NoError(err)
	suite.False(evaluation.Allowed)
	suite.Len(evaluation.Violations, 1)
	suite.enforcementRepository.AssertExpectations(suite.T())
}

func (suite *PolicyUsecaseTestSuite) TestEvaluatePolicies_alertDedupedWithinWindow() {
	suite.aiSystemRepository.On("GetAISystemById", mock.Anything, suite.executorMock, "sys-1").
		Return(suite.system(), nil)
	suite.policyRepository.On("ListActivePoliciesOfOrganization", mock.Anything, suite.executorMock, "org-1").
		Return([]models.Policy{suite.prohibitedPolicy()}, nil)

	suite.transactionFactory.On("Transaction", mock.Anything, mock.Anything).Return(nil)
	suite.violationRepository.On("CreateViolation", mock.Anything, suite.transactionMock, mock.Anything).
		Return(nil)
	suite.enforcementRepository.On("CreateEnforcementLogEntry", mock.Anything, suite.transactionMock,
		mock.Anything).
		Return(nil)
	suite.enforcementRepository.On("HasRecentGovernanceAlert", mock.Anything, suite.executorMock,
		"sys-1", models.AlertSourcePolicy, mock.Anything, suite.now.Add(-time.Hour)).
		Return(true, nil)

	_, err := suite.makeUsecase().EvaluatePolicies(context.Background(), "sys-1", "deploy")

	suite.NoError(err)
	// The violation and log entry are still written: only the alert is deduped.
	suite.violationRepository.AssertExpectations(suite.T())
	suite.enforcementRepository.AssertNotCalled(suite.T(), "CreateGovernanceAlert",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestPolicyUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(PolicyUsecaseTestSuite))
}
