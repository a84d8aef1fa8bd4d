package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseService(f *closureFixture) service.ExpenseService {
	return service.NewExpenseService(f.expenseRepo, f.closure, f.ledger, time.Local)
}

func newPaymentService(f *closureFixture, employees *fakeEmployeeRepo) service.PaymentService {
	return service.NewPaymentService(f.paymentRepo, employees, f.closure, f.ledger, time.Local)
}

func TestTransferExpensePostsToTransferAccount(t *testing.T) {
	f := newClosureFixture(t, "500")
	svc := newExpenseService(f)

	_, err := svc.Create(context.Background(), dto.CreateExpenseRequest{
		Description:   "gas refill",
		Amount:        dec("80"),
		Category:      "utilities",
		PaymentMethod: model.PaymentTransfer,
	}, "admin")
	require.NoError(t, err)

	assert.True(t, f.ledgerRepo.balance(model.AccountTransfer).Equal(dec("-80")))
}

func TestCashExpenseFromSavedCashPosts(t *testing.T) {
	f := newClosureFixture(t, "500")
	svc := newExpenseService(f)

	_, err := svc.Create(context.Background(), dto.CreateExpenseRequest{
		Description:      "market run",
		Amount:           dec("120"),
		Category:         "ingredients",
		PaymentMethod:    model.PaymentCash,
		FromCashRegister: false,
	}, "admin")
	require.NoError(t, err)

	assert.True(t, f.ledgerRepo.balance(model.AccountSavedCash).Equal(dec("-120")))
}

func TestCashExpenseFromRegisterPostsNothing(t *testing.T) {
	f := newClosureFixture(t, "500")
	svc := newExpenseService(f)

	_, err := svc.Create(context.Background(), dto.CreateExpenseRequest{
		Description:      "ice",
		Amount:           dec("30"),
		Category:         "ingredients",
		PaymentMethod:    model.PaymentCash,
		FromCashRegister: true,
	}, "admin")
	require.NoError(t, err)

	assert.Empty(t, f.ledgerRepo.movements, "till expenses settle at closure, not in the ledger")
}

func TestExpenseBlockedAfterClose(t *testing.T) {
	f := newClosureFixture(t, "500")
	svc := newExpenseService(f)
	_, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateExpenseRequest{
		Description:   "late entry",
		Amount:        dec("10"),
		Category:      "general",
		PaymentMethod: model.PaymentCash,
	}, "admin")
	assert.ErrorIs(t, err, service.ErrRegisterClosed)
}

func TestPaymentPostingRules(t *testing.T) {
	f := newClosureFixture(t, "500")
	employees := newFakeEmployeeRepo()
	cook := employees.add("Luis", "cook", dec("60"))
	svc := newPaymentService(f, employees)
	ctx := context.Background()

	// Transfer payment → transfer expense.
	_, err := svc.Create(ctx, dto.CreatePaymentRequest{
		EmployeeID:    cook.ID.String(),
		FinalAmount:   dec("60"),
		PaymentMethod: model.PaymentTransfer,
	}, "admin")
	require.NoError(t, err)
	assert.True(t, f.ledgerRepo.balance(model.AccountTransfer).Equal(dec("-60")))

	// Cash from the till → no posting.
	_, err = svc.Create(ctx, dto.CreatePaymentRequest{
		EmployeeID:       cook.ID.String(),
		FinalAmount:      dec("40"),
		PaymentMethod:    model.PaymentCash,
		FromCashRegister: true,
	}, "admin")
	require.NoError(t, err)
	assert.Len(t, f.ledgerRepo.movements, 1)

	// Cash from saved cash → saved-cash expense.
	_, err = svc.Create(ctx, dto.CreatePaymentRequest{
		EmployeeID:    cook.ID.String(),
		FinalAmount:   dec("25"),
		PaymentMethod: model.PaymentCash,
	}, "admin")
	require.NoError(t, err)
	assert.True(t, f.ledgerRepo.balance(model.AccountSavedCash).Equal(dec("-25")))
}

func TestPaymentCapturesEmployeeSnapshot(t *testing.T) {
	f := newClosureFixture(t, "500")
	employees := newFakeEmployeeRepo()
	waiter := employees.add("Marta", "waiter", dec("45"))
	svc := newPaymentService(f, employees)

	resp, err := svc.Create(context.Background(), dto.CreatePaymentRequest{
		EmployeeID:    waiter.ID.String(),
		FinalAmount:   dec("50"),
		Notes:         "extra shift",
		PaymentMethod: model.PaymentCash,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Marta", resp.EmployeeName)
	assert.Equal(t, "waiter", resp.Position)
	assert.True(t, resp.BaseAmount.Equal(dec("45")))
	assert.True(t, resp.FinalAmount.Equal(dec("50")))
}
