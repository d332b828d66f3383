package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, mapped to the error taxonomy exposed to callers
var (
	// BadParameterError covers malformed or unrecognized inputs
	BadParameterError = errors.New("bad parameter")

	// NotFoundError covers references to absent entities (AI system, regulation,
	// policy, deployment, rollback record)
	NotFoundError = errors.New("not found")

	// PreconditionFailedError covers operations refused because of current state;
	// it is never silently coerced into a success
	PreconditionFailedError = errors.New("precondition failed")

	// ForbiddenError is returned when the acting identity is not allowed to
	// perform the operation
	ForbiddenError = errors.New("forbidden")

	// ConflictError is returned on unique constraint conflicts
	ConflictError = errors.New("duplicate value")

	// IntegrityError covers decrypt/verify failures on protected fields; fatal,
	// partial or garbled data is never returned
	IntegrityError = errors.New("integrity failure")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Rollback controller errors
var (
	ErrRollbackCooldownActive = errors.Wrap(PreconditionFailedError,
		"rollback cooldown has not elapsed since the last completed rollback")
	ErrRollbackDailyCapReached = errors.Wrap(PreconditionFailedError,
		"automated rollback daily cap reached")
	ErrNoRollbackTarget = errors.Wrap(PreconditionFailedError,
		"no previous deployment available to roll back to")
	ErrRollbackNotPendingApproval = errors.Wrap(PreconditionFailedError,
		"rollback execution is not pending approval")
	ErrUnauthorizedApprover = errors.Wrap(ForbiddenError,
		"approver does not hold any of the required roles")
	ErrRollbackPolicyDisabled = errors.Wrap(PreconditionFailedError,
		"no enabled rollback policy for this AI system")
	ErrRollbackTriggerNotMatched = errors.Wrap(PreconditionFailedError,
		"violation does not match any configured rollback trigger")
)

// Violation lifecycle errors
var ErrViolationAlreadyResolved = errors.Wrap(ConflictError,
	"violation resolution fields can only be set once")

// Metric boundary errors
var ErrUnknownMetric = errors.Wrap(BadParameterError, "unrecognized metric name")
