package repositories

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) error {
	return errors.Wrap(&pgconn.PgError{Code: code}, "error executing sql query")
}

func TestIsUniqueViolationError(t *testing.T) {
	assert.True(t, IsUniqueViolationError(pgError(pgerrcode.UniqueViolation)))
	assert.False(t, IsUniqueViolationError(pgError(pgerrcode.DeadlockDetected)))
	assert.False(t, IsUniqueViolationError(errors.New("connection reset")))
}

func TestIsDeadlockError(t *testing.T) {
	assert.True(t, IsDeadlockError(pgError(pgerrcode.DeadlockDetected)))
	assert.False(t, IsDeadlockError(pgError(pgerrcode.SerializationFailure)))
	assert.False(t, IsDeadlockError(errors.New("connection reset")))
}

func TestIsSerializationFailureError(t *testing.T) {
	assert.True(t, IsSerializationFailureError(pgError(pgerrcode.SerializationFailure)))
	assert.False(t, IsSerializationFailureError(pgError(pgerrcode.DeadlockDetected)))
	assert.False(t, IsSerializationFailureError(errors.New("connection reset")))
}
