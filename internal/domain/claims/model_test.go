package claims

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/warranty"
)

func TestClaimLine_StateMachine(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
		for _, to := range []LineState{StateConfirmed, StateInToControl, StateInToTreate, StateTreated} {
			require.NoError(t, line.SetState(to))
			assert.Equal(t, to, line.State)
			assert.NotNil(t, line.LastStateChange)
		}
	})

	t.Run("draft cannot jump to treated", func(t *testing.T) {
		line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
		err := line.SetState(StateTreated)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidStateTransition))
		assert.Equal(t, StateDraft, line.State)
		assert.Nil(t, line.LastStateChange)
	})

	t.Run("refusal from any active state", func(t *testing.T) {
		for _, from := range []LineState{StateDraft, StateConfirmed, StateInToControl, StateInToTreate} {
			line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
			line.State = from
			require.NoError(t, line.SetState(StateRefused))
		}
	})

	t.Run("refused reopens to draft only", func(t *testing.T) {
		line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
		line.State = StateRefused
		require.Error(t, line.SetState(StateConfirmed))
		require.NoError(t, line.SetState(StateDraft))
	})

	t.Run("treated is final", func(t *testing.T) {
		line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
		line.State = StateTreated
		require.Error(t, line.SetState(StateRefused))
	})
}

func TestClaimLine_ReturnValue(t *testing.T) {
	line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(2.5))
	line.UnitSalePrice = decimal.RequireFromString("19.99")

	assert.True(t, line.ReturnValue().Equal(decimal.RequireFromString("49.975")),
		"got %s", line.ReturnValue())
}

func TestClaimLine_Copy(t *testing.T) {
	src := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))
	src.MoveInID = id.New()
	src.MoveOutID = id.New()
	src.RefundLineID = id.New()
	src.State = StateTreated

	newClaim := id.New()
	dup := src.Copy(newClaim)

	assert.Equal(t, newClaim, dup.ClaimID)
	assert.NotEqual(t, src.LineID, dup.LineID)
	assert.True(t, id.IsNil(dup.MoveInID))
	assert.True(t, id.IsNil(dup.MoveOutID))
	assert.True(t, id.IsNil(dup.RefundLineID))
	assert.Equal(t, StateDraft, dup.State)
	assert.Equal(t, src.ProductID, dup.ProductID)
}

func TestClaimLine_WarrantyFieldsMoveTogether(t *testing.T) {
	line := NewClaimLine(id.New(), id.New(), types.NewQuantityFromFloat64(1))

	limit := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	line.ApplyDecision(&warranty.Decision{LimitDate: limit, Status: warranty.StatusValid})
	require.NotNil(t, line.GuaranteeLimit)
	assert.Equal(t, limit, *line.GuaranteeLimit)
	assert.Equal(t, warranty.StatusValid, line.WarrantyStatus)

	line.ApplyDecision(nil)
	assert.Nil(t, line.GuaranteeLimit)
	assert.Empty(t, line.WarrantyStatus)
}

func TestClaim_Validate(t *testing.T) {
	ctx := context.Background()
	companyID := id.New()

	valid := func() *Claim {
		c := NewClaim(companyID, TypeCustomer, "broken on arrival")
		c.WarehouseID = id.New()
		c.Lines = append(c.Lines, NewClaimLine(c.ID, id.New(), types.NewQuantityFromFloat64(1)))
		return c
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("missing subject", func(t *testing.T) {
		c := valid()
		c.Subject = ""
		assert.Error(t, c.Validate(ctx))
	})

	t.Run("missing warehouse", func(t *testing.T) {
		c := valid()
		c.WarehouseID = id.Nil()
		assert.Error(t, c.Validate(ctx))
	})

	t.Run("bad claim type", func(t *testing.T) {
		c := valid()
		c.Type = "weird"
		assert.Error(t, c.Validate(ctx))
	})

	t.Run("line without product", func(t *testing.T) {
		c := valid()
		c.Lines[0].ProductID = id.Nil()
		assert.Error(t, c.Validate(ctx))
	})

	t.Run("non positive quantity", func(t *testing.T) {
		c := valid()
		c.Lines[0].Quantity = 0
		assert.Error(t, c.Validate(ctx))
	})
}

func TestClaim_NumberImmutable(t *testing.T) {
	c := NewClaim(id.New(), TypeCustomer, "subject")
	require.NoError(t, c.SetNumber("RMA-MAIN-2026-00001"))
	err := c.SetNumber("RMA-MAIN-2026-00002")
	require.Error(t, err)
	assert.Equal(t, "RMA-MAIN-2026-00001", c.Number)
}
