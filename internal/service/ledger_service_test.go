package service_test

import (
	"context"
	"testing"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerSummaryFoldsPerAccount(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := service.NewLedgerService(repo)
	ctx := context.Background()

	post := func(account, direction, amount string) {
		_, err := svc.PostMovement(ctx, dto.PostMovementRequest{
			Account:     account,
			Description: "manual entry",
			Amount:      dec(amount),
			Direction:   direction,
		}, "admin")
		require.NoError(t, err)
	}

	post(model.AccountTransfer, model.DirectionIncome, "1000")
	post(model.AccountTransfer, model.DirectionExpense, "400")
	post(model.AccountSavedCash, model.DirectionIncome, "300")
	post(model.AccountSavedCash, model.DirectionExpense, "50")

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, sum.TotalTransfers.Equal(dec("600")))
	assert.True(t, sum.TotalSavedCash.Equal(dec("250")))
	assert.True(t, sum.TotalMajorCash.Equal(dec("850")))
}

func TestLedgerRejectsNonPositiveAmount(t *testing.T) {
	svc := service.NewLedgerService(&fakeLedgerRepo{})

	_, err := svc.PostMovement(context.Background(), dto.PostMovementRequest{
		Account:     model.AccountTransfer,
		Description: "bad entry",
		Amount:      dec("0"),
		Direction:   model.DirectionIncome,
	}, "admin")
	assert.Error(t, err)
}

func TestLedgerHelpersSkipZeroAmounts(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := service.NewLedgerService(repo)
	ctx := context.Background()

	// A cash-only sale posts no transfer movement.
	require.NoError(t, svc.RecordTransferIncome(ctx, nil, dec("0"), "Sale x", "admin"))
	assert.Empty(t, repo.movements)

	require.NoError(t, svc.RecordTransferIncome(ctx, nil, dec("120"), "Sale y", "admin"))
	require.Len(t, repo.movements, 1)
	assert.Equal(t, model.AccountTransfer, repo.movements[0].Account)
}

func TestLedgerDeleteMovement(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := service.NewLedgerService(repo)
	ctx := context.Background()

	resp, err := svc.PostMovement(ctx, dto.PostMovementRequest{
		Account:     model.AccountSavedCash,
		Description: "typo entry",
		Amount:      dec("75"),
		Direction:   model.DirectionIncome,
	}, "admin")
	require.NoError(t, err)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMovement(ctx, id))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, sum.TotalSavedCash.IsZero())
}
