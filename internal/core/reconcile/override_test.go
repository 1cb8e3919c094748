package reconcile_test

import (
	"testing"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/core/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverride(t *testing.T) {
	tests := []struct {
		name    string
		current domain.MatchStatus
		action  reconcile.OverrideAction
		want    domain.MatchStatus
		wantErr bool
	}{
		{
			name:    "confirm unmatched",
			current: domain.Unmatched,
			action:  reconcile.Confirm,
			want:    domain.Matched,
		},
		{
			name:    "unconfirm matched",
			current: domain.Matched,
			action:  reconcile.Unconfirm,
			want:    domain.Unmatched,
		},
		{
			name:    "confirm matched is a no-op transition and rejected",
			current: domain.Matched,
			action:  reconcile.Confirm,
			wantErr: true,
		},
		{
			name:    "unconfirm unmatched rejected",
			current: domain.Unmatched,
			action:  reconcile.Unconfirm,
			wantErr: true,
		},
		{
			name:    "pending confirm cannot be confirmed manually",
			current: domain.PendingConfirm,
			action:  reconcile.Confirm,
			wantErr: true,
		},
		{
			name:    "pending confirm cannot be unconfirmed manually",
			current: domain.PendingConfirm,
			action:  reconcile.Unconfirm,
			wantErr: true,
		},
		{
			name:    "unknown action rejected",
			current: domain.Unmatched,
			action:  reconcile.OverrideAction("FLIP"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reconcile.ApplyOverride(tt.current, tt.action)
			if tt.wantErr {
				require.Error(t, err)
				kind, ok := apperrors.ValidationKindOf(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.InvalidTransition, kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveStatusPrefersOverride(t *testing.T) {
	rec := domain.Reconciliation{ComputedStatus: domain.Unmatched}
	assert.Equal(t, domain.Unmatched, rec.EffectiveStatus())

	override := domain.Matched
	rec.OverrideStatus = &override
	assert.Equal(t, domain.Matched, rec.EffectiveStatus())
	// Computed truth is preserved under the override.
	assert.Equal(t, domain.Unmatched, rec.ComputedStatus)
}
