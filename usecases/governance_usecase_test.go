package usecases

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/modelproof/modelproof-backend/mocks"
	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
	"github.com/modelproof/modelproof-backend/repositories"
	"github.com/modelproof/modelproof-backend/usecases/executor_factory"
)

type GovernanceUsecaseTestSuite struct {
	suite.Suite
	executorFactory      *mocks.ExecutorFactory
	executorMock         *mocks.Executor
	regulationRepository *mocks.RegulationRepository
	policyRepository     *mocks.PolicyRepository
	rollbackRepository   *mocks.RollbackRepository
}

func (suite *GovernanceUsecaseTestSuite) SetupTest() {
	suite.executorMock = new(mocks.Executor)
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.regulationRepository = new(mocks.RegulationRepository)
	suite.policyRepository = new(mocks.PolicyRepository)
	suite.rollbackRepository = new(mocks.RollbackRepository)

	suite.executorFactory.On("NewExecutor").Return(suite.executorMock)
}

func (suite *GovernanceUsecaseTestSuite) makeUsecase() GovernanceUsecase {
	return NewGovernanceUsecase(suite.executorFactory, suite.regulationRepository,
		suite.policyRepository, suite.rollbackRepository)
}

func (suite *GovernanceUsecaseTestSuite) validRegulationInput() models.CreateRegulationInput {
	return models.CreateRegulationInput{
		Framework:             "HIPAA",
		Jurisdiction:          "federal",
		Name:                  "Breach Notification Rule",
		ControlId:             "164.404",
		ControlName:           "Notification to individuals",
		Description:           "Notify affected individuals after a breach of unsecured PHI",
		EventTypes:            []string{"phi_exposure"},
		ReportingRequired:     true,
		ReportingDeadlineDays: 60,
		EffectiveDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRegulation_nominal() {
	input := suite.validRegulationInput()
	suite.regulationRepository.On("CreateRegulation", mock.Anything, suite.executorMock,
		input, mock.AnythingOfType("string")).
		Return(nil)

	regulationId, err := suite.makeUsecase().CreateRegulation(context.Background(), input)

	suite.NoError(err)
	suite.NotEmpty(regulationId)
	suite.regulationRepository.AssertExpectations(suite.T())
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRegulation_missingFieldsAreRejected() {
	input := suite.validRegulationInput()
	input.ControlId = ""

	_, err := suite.makeUsecase().CreateRegulation(context.Background(), input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.regulationRepository.AssertNotCalled(suite.T(), "CreateRegulation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRegulation_unknownEventTypeIsRejected() {
	input := suite.validRegulationInput()
	input.EventTypes = []string{"phi_exposure", "quantum_entanglement"}

	_, err := suite.makeUsecase().CreateRegulation(context.Background(), input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.regulationRepository.AssertNotCalled(suite.T(), "CreateRegulation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GovernanceUsecaseTestSuite) TestCreatePolicy_approvalWorkflowOnlyForApprovalRequired() {
	suite.policyRepository.On("CreatePolicy", mock.Anything, suite.executorMock,
		mock.MatchedBy(func(policy models.Policy) bool {
			return policy.Type == models.PolicyApprovalRequired &&
				policy.Enforcement.Approval != nil &&
				len(policy.Enforcement.Approval.ApproverRoles) == 2 &&
				policy.Active
		})).
		Return(nil)

	created, err := suite.makeUsecase().CreatePolicy(context.Background(), models.CreatePolicyInput{
		OrganizationId: "3c181547-e183-45d8-a097-2fe2c82a624c",
		Name:           "High risk deployments need sign-off",
		Type:           "approval_required",
		Scope:          "all",
		MinRiskLevel:   pure_utils.Ptr("high"),
		ApproverRoles:  []string{"compliance_officer", "cto"},
	})

	suite.NoError(err)
	suite.NotEmpty(created.Id)
	suite.Equal(models.RiskHigh, *created.Conditions.MinRiskLevel)
	suite.policyRepository.AssertExpectations(suite.T())
}

func (suite *GovernanceUsecaseTestSuite) TestCreatePolicy_invalidTypeIsRejected() {
	_, err := suite.makeUsecase().CreatePolicy(context.Background(), models.CreatePolicyInput{
		OrganizationId: "3c181547-e183-45d8-a097-2fe2c82a624c",
		Name:           "Broken policy",
		Type:           "forbidden",
		Scope:          "all",
	})

	suite.ErrorIs(err, models.BadParameterError)
	suite.policyRepository.AssertNotCalled(suite.T(), "CreatePolicy",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GovernanceUsecaseTestSuite) TestCreatePolicy_repositoryErrorIsPropagated() {
	suite.policyRepository.On("CreatePolicy", mock.Anything, suite.executorMock, mock.Anything).
		Return(errors.New("insert failed"))

	_, err := suite.makeUsecase().CreatePolicy(context.Background(), models.CreatePolicyInput{
		OrganizationId: "3c181547-e183-45d8-a097-2fe2c82a624c",
		Name:           "Monitored systems",
		Type:           "monitored",
		Scope:          "all",
	})

	suite.ErrorContains(err, "insert failed")
}

func (suite *GovernanceUsecaseTestSuite) validRollbackPolicyInput() models.CreateRollbackPolicyInput {
	return models.CreateRollbackPolicyInput{
		OrganizationId: "3c181547-e183-45d8-a097-2fe2c82a624c",
		AISystemId:     "sys-1",
		Enabled:        true,
		Triggers: []models.RollbackTriggerRuleInput{
			{ViolationType: "drift_detected", Severity: "*"},
		},
		RequireApproval: true,
		ApproverRoles:   []string{"compliance_officer"},
	}
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRollbackPolicy_appliesCooldownAndCapDefaults() {
	suite.rollbackRepository.On("CreateRollbackPolicy", mock.Anything, suite.executorMock,
		mock.MatchedBy(func(policy models.RollbackPolicy) bool {
			return policy.CooldownMinutes == 60 &&
				policy.MaxAutomatedPerDay == 3 &&
				len(policy.Triggers) == 1 &&
				policy.Triggers[0].ViolationType == "drift_detected"
		})).
		Return(nil)

	policyId, err := suite.makeUsecase().CreateRollbackPolicy(context.Background(),
		suite.validRollbackPolicyInput())

	suite.NoError(err)
	suite.NotEmpty(policyId)
	suite.rollbackRepository.AssertExpectations(suite.T())
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRollbackPolicy_explicitCooldownWins() {
	suite.rollbackRepository.On("CreateRollbackPolicy", mock.Anything, suite.executorMock,
		mock.MatchedBy(func(policy models.RollbackPolicy) bool {
			return policy.CooldownMinutes == 30 && policy.MaxAutomatedPerDay == 3
		})).
		Return(nil)

	input := suite.validRollbackPolicyInput()
	input.CooldownMinutes = pure_utils.Ptr(30)

	_, err := suite.makeUsecase().CreateRollbackPolicy(context.Background(), input)

	suite.NoError(err)
	suite.rollbackRepository.AssertExpectations(suite.T())
}

func (suite *GovernanceUsecaseTestSuite) TestCreateRollbackPolicy_unknownTriggerSeverityIsRejected() {
	input := suite.validRollbackPolicyInput()
	input.Triggers = []models.RollbackTriggerRuleInput{
		{ViolationType: "bias_detected", Severity: "catastrophic"},
	}

	_, err := suite.makeUsecase().CreateRollbackPolicy(context.Background(), input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.rollbackRepository.AssertNotCalled(suite.T(), "CreateRollbackPolicy",
		mock.Anything, mock.Anything, mock.Anything)
}

// SetPolicyActive runs against the real repository through a stubbed pool, so
// the statement it issues is checked end to end.
func (suite *GovernanceUsecaseTestSuite) TestSetPolicyActive_updatesTheStoredPolicy() {
	stub := executor_factory.NewExecutorFactoryStub()
	defer stub.Mock.Close()

	stub.Mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE policies SET active = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL")).
		WithArgs(false, pgxmock.AnyArg(), "policy-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	uc := NewGovernanceUsecase(stub, suite.regulationRepository,
		&repositories.PolicyRepositoryPostgresql{}, suite.rollbackRepository)

	suite.NoError(uc.SetPolicyActive(context.Background(), "policy-1", false))
	suite.NoError(stub.Mock.ExpectationsWereMet())
}

func TestGovernanceUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(GovernanceUsecaseTestSuite))
}
