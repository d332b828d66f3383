package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelproof/modelproof-backend/models"
)

var aiSystemColumns = []string{
	"id", "organization_id", "name", "department", "location", "risk_level",
	"vendor_id", "category", "certified", "is_high_risk", "is_employment_ai",
	"created_at",
}

func TestAISystemRepository_GetAISystemById(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	createdAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pool.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, organization_id, name, department, location, risk_level, "+
			"vendor_id, category, certified, is_high_risk, is_employment_ai, created_at "+
			"FROM ai_systems WHERE id = $1")).
		WithArgs("sys-1").
		WillReturnRows(pgxmock.NewRows(aiSystemColumns).
			AddRow("sys-1", "org-1", "Diagnostic Triage", "Cardiology", "California",
				"high", "vendor-1", "diagnosis", true, true, false, createdAt))

	repo := AISystemRepositoryPostgresql{}
	system, err := repo.GetAISystemById(context.Background(), pool, "sys-1")

	require.NoError(t, err)
	assert.Equal(t, "sys-1", system.Id)
	assert.Equal(t, "California", system.Location)
	assert.Equal(t, models.RiskHigh, system.RiskLevel)
	assert.True(t, system.IsHighRisk)
	require.NoError(t, pool.ExpectationsWereMet())
}

func TestAISystemRepository_GetAISystemById_notFound(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	pool.ExpectQuery("SELECT .* FROM ai_systems").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(aiSystemColumns))

	repo := AISystemRepositoryPostgresql{}
	_, err = repo.GetAISystemById(context.Background(), pool, "missing")

	assert.ErrorIs(t, err, models.NotFoundError)
}

func TestAISystemRepository_ListOrganizationIds(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	pool.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT organization_id FROM ai_systems")).
		WillReturnRows(pgxmock.NewRows([]string{"organization_id"}).
			AddRow("org-1").
			AddRow("org-2"))

	repo := AISystemRepositoryPostgresql{}
	organizationIds, err := repo.ListOrganizationIds(context.Background(), pool)

	require.NoError(t, err)
	assert.Equal(t, []string{"org-1", "org-2"}, organizationIds)
}
