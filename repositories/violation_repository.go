package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

// DescriptionCrypter shields violation descriptions at rest. Decrypt failures
// are integrity failures: the repository never falls back to returning the raw
// stored bytes.
type DescriptionCrypter interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

type ViolationRepository interface {
	CreateViolation(ctx context.Context, exec Executor, violation models.Violation) error
	GetViolationById(ctx context.Context, exec Executor, violationId string) (models.Violation, error)
	ListViolationsOfAISystem(ctx context.Context, exec Executor, aiSystemId string) ([]models.Violation, error)
	ResolveViolation(ctx context.Context, exec Executor, violationId, resolvedBy string) error
}

type ViolationRepositoryPostgresql struct {
	crypter DescriptionCrypter
}

func NewViolationRepository(crypter DescriptionCrypter) *ViolationRepositoryPostgresql {
	return &ViolationRepositoryPostgresql{crypter: crypter}
}

func (repo *ViolationRepositoryPostgresql) CreateViolation(ctx context.Context, exec Executor,
	violation models.Violation,
) error {
	encrypted, err := repo.crypter.Encrypt([]byte(violation.Description))
	if err != nil {
		return errors.Wrap(err, "can't encrypt violation description")
	}

	var regulationId, policyId *string
	if violation.RegulationId != nil {
		regulationId = violation.RegulationId
	}
	if violation.PolicyId != nil {
		policyId = violation.PolicyId
	}

	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_VIOLATIONS).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"source",
				"framework",
				"regulation_id",
				"policy_id",
				"control_id",
				"severity",
				"description",
				"reporting_required",
				"reporting_deadline",
				"detected_at",
			).
			Values(
				violation.Id,
				violation.OrganizationId,
				violation.AISystemId,
				violation.Source.String(),
				violation.Framework,
				regulationId,
				policyId,
				violation.ControlId,
				violation.Severity.String(),
				encrypted,
				violation.ReportingRequired,
				violation.ReportingDeadline,
				violation.DetectedAt,
			),
	)
}

func (repo *ViolationRepositoryPostgresql) GetViolationById(ctx context.Context, exec Executor,
	violationId string,
) (models.Violation, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectViolationColumns...).
			From(dbmodels.TABLE_VIOLATIONS).
			Where("id = ?", violationId),
		repo.adaptDecrypted,
	)
}

func (repo *ViolationRepositoryPostgresql) ListViolationsOfAISystem(ctx context.Context, exec Executor,
	aiSystemId string,
) ([]models.Violation, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectViolationColumns...).
			From(dbmodels.TABLE_VIOLATIONS).
			Where("ai_system_id = ?", aiSystemId).
			OrderBy("detected_at DESC"),
		repo.adaptDecrypted,
	)
}

func (repo *ViolationRepositoryPostgresql) adaptDecrypted(db dbmodels.DBViolation) (models.Violation, error) {
	violation, err := dbmodels.AdaptViolation(db)
	if err != nil {
		return models.Violation{}, err
	}

	plaintext, err := repo.crypter.Decrypt(db.Description)
	if err != nil {
		return models.Violation{}, errors.Wrap(models.IntegrityError,
			"can't decrypt violation description")
	}
	violation.Description = string(plaintext)
	return violation, nil
}

// ResolveViolation sets the resolution fields, which may only happen once.
func (repo *ViolationRepositoryPostgresql) ResolveViolation(ctx context.Context, exec Executor,
	violationId, resolvedBy string,
) error {
	sql, args, err := NewQueryBuilder().
		Update(dbmodels.TABLE_VIOLATIONS).
		Set("resolved_at", squirrel.Expr("now()")).
		Set("resolved_by", resolvedBy).
		Where("id = ? AND resolved_at IS NULL", violationId).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "error executing sql query")
	}
	if tag.RowsAffected() == 0 {
		_, err := repo.GetViolationById(ctx, exec, violationId)
		if err != nil {
			return err
		}
		return models.ErrViolationAlreadyResolved
	}
	return nil
}
