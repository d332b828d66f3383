package repositories

import (
	"context"
	"time"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type PolicyRepository interface {
	GetPolicyById(ctx context.Context, exec Executor, policyId string) (models.Policy, error)
	ListActivePoliciesOfOrganization(ctx context.Context, exec Executor, organizationId string) ([]models.Policy, error)
	CreatePolicy(ctx context.Context, exec Executor, policy models.Policy) error
	SetPolicyActive(ctx context.Context, exec Executor, policyId string, active bool) error
	SoftDeletePolicy(ctx context.Context, exec Executor, policyId string) error
}

type PolicyRepositoryPostgresql struct{}

func (repo *PolicyRepositoryPostgresql) GetPolicyById(ctx context.Context, exec Executor,
	policyId string,
) (models.Policy, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectPolicyColumns...).
			From(dbmodels.TABLE_POLICIES).
			Where("id = ? AND deleted_at IS NULL", policyId),
		dbmodels.AdaptPolicy,
	)
}

func (repo *PolicyRepositoryPostgresql) ListActivePoliciesOfOrganization(ctx context.Context, exec Executor,
	organizationId string,
) ([]models.Policy, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectPolicyColumns...).
			From(dbmodels.TABLE_POLICIES).
			Where("organization_id = ? AND active AND deleted_at IS NULL", organizationId).
			OrderBy("created_at"),
		dbmodels.AdaptPolicy,
	)
}

func (repo *PolicyRepositoryPostgresql) CreatePolicy(ctx context.Context, exec Executor,
	policy models.Policy,
) error {
	conditions, err := dbmodels.SerializePolicyConditions(policy.Conditions)
	if err != nil {
		return err
	}
	enforcement, err := dbmodels.SerializeEnforcementConfig(policy.Enforcement)
	if err != nil {
		return err
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_POLICIES).
			Columns(
				"id",
				"organization_id",
				"name",
				"type",
				"scope",
				"scope_filter",
				"conditions",
				"enforcement",
				"active",
			).
			Values(
				policy.Id,
				policy.OrganizationId,
				policy.Name,
				policy.Type.String(),
				policy.Scope.String(),
				policy.ScopeFilter,
				conditions,
				enforcement,
				policy.Active,
			),
	)
}

func (repo *PolicyRepositoryPostgresql) SetPolicyActive(ctx context.Context, exec Executor,
	policyId string, active bool,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_POLICIES).
			Set("active", active).
			Set("updated_at", time.Now()).
			Where("id = ? AND deleted_at IS NULL", policyId),
	)
}

func (repo *PolicyRepositoryPostgresql) SoftDeletePolicy(ctx context.Context, exec Executor,
	policyId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_POLICIES).
			Set("deleted_at", time.Now()).
			Set("updated_at", time.Now()).
			Where("id = ? AND deleted_at IS NULL", policyId),
	)
}
