package reconcile

import (
	"fmt"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
)

// OverrideAction is a manual accountant action on a reconciliation verdict.
type OverrideAction string

const (
	// Confirm force-marks an UNMATCHED reconciliation as resolved without
	// changing the underlying numbers.
	Confirm OverrideAction = "CONFIRM"
	// Unconfirm reverts a MATCHED reconciliation back to UNMATCHED.
	Unconfirm OverrideAction = "UNCONFIRM"
)

// ApplyOverride runs the manual-override state machine. PENDING_CONFIRM is
// only reachable by recomputation over an empty transaction set and only
// leaves that state the same way, so it is never a valid source or target of
// a manual toggle.
func ApplyOverride(current domain.MatchStatus, action OverrideAction) (domain.MatchStatus, error) {
	switch action {
	case Confirm:
		if current == domain.Unmatched {
			return domain.Matched, nil
		}
	case Unconfirm:
		if current == domain.Matched {
			return domain.Unmatched, nil
		}
	default:
		return "", apperrors.NewValidationError(apperrors.InvalidTransition, "action",
			fmt.Sprintf("unknown override action %q", action))
	}
	return "", apperrors.NewValidationError(apperrors.InvalidTransition, "action",
		fmt.Sprintf("cannot %s a reconciliation in status %s", action, current))
}
