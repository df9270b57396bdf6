// Package approval implements the one status-transition rule every request
// entity shares: a record moves out of PENDING exactly once, to APPROVED or
// REJECTED, and the audit stamps travel with the decision. Services resolve
// a Decision here and copy it onto their entity instead of re-deriving the
// same guard inline.
package approval

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-uerp/internal/shared/apperror"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

var (
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"status transition not allowed from current status",
		http.StatusUnprocessableEntity,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting",
		http.StatusBadRequest,
	)
	// ErrConcurrentTransition is returned by repositories when a conditional
	// status update matches zero rows: another actor already moved the record.
	ErrConcurrentTransition = apperror.New(
		apperror.CodeConflict,
		"request was already decided by another actor",
		http.StatusConflict,
	)
)

// Decision is the resolved outcome of an approval transition: the target
// status plus the audit fields the caller copies onto its entity. ApprovedBy
// and ApprovedAt are set on both terminal branches, never otherwise.
type Decision struct {
	Status          string
	ApprovedBy      *uuid.UUID
	ApprovedAt      *time.Time
	RejectionReason *string
	Remarks         *string
}

func transitionAllowed(current string, allowedFrom []string) bool {
	if len(allowedFrom) == 0 {
		allowedFrom = []string{StatusPending}
	}
	for _, s := range allowedFrom {
		if s == current {
			return true
		}
	}
	return false
}

// Approve resolves a transition to APPROVED, stamping the actor and time.
// allowedFrom defaults to PENDING when empty.
func Approve(current string, actor uuid.UUID, remarks *string, allowedFrom ...string) (Decision, error) {
	if !transitionAllowed(current, allowedFrom) {
		return Decision{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	return Decision{
		Status:     StatusApproved,
		ApprovedBy: &actor,
		ApprovedAt: &now,
		Remarks:    remarks,
	}, nil
}

// Reject resolves a transition to REJECTED. A non-empty reason is mandatory;
// the deciding actor and time are stamped the same way as an approval.
func Reject(current string, actor uuid.UUID, reason string, allowedFrom ...string) (Decision, error) {
	if !transitionAllowed(current, allowedFrom) {
		return Decision{}, ErrInvalidTransition
	}
	if reason == "" {
		return Decision{}, ErrRejectionReasonRequired
	}

	now := time.Now().UTC()
	return Decision{
		Status:          StatusRejected,
		ApprovedBy:      &actor,
		ApprovedAt:      &now,
		RejectionReason: &reason,
	}, nil
}

// Advance guards a plain forward step without audit stamps, for monotonic
// progressions like payroll PENDING → PROCESSED.
func Advance(current, target string, allowedFrom ...string) (Decision, error) {
	if !transitionAllowed(current, allowedFrom) {
		return Decision{}, ErrInvalidTransition
	}
	return Decision{Status: target}, nil
}
