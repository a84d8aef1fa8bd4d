package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	*closureFixture
	sales service.SaleService
	dish  *model.Product
}

func newSaleFixture(t *testing.T) *saleFixture {
	f := newClosureFixture(t, "500")
	dish := f.productRepo.add("Ceviche", dec("25"), 20, 5, true)
	return &saleFixture{
		closureFixture: f,
		sales:          service.NewSaleService(f.saleRepo, f.productRepo, f.closure, f.ledger, time.Local),
		dish:           dish,
	}
}

func (f *saleFixture) request(quantity int, cash, transfer, received string) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Items:          []dto.SaleItemRequest{{ProductID: f.dish.ID.String(), Quantity: quantity}},
		CashAmount:     dec(cash),
		TransferAmount: dec(transfer),
		CashReceived:   dec(received),
		PaymentMethod:  model.PaymentMixed,
	}
}

func TestCreateSalePostsTransferPortion(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.sales.Create(context.Background(), f.request(2, "30", "20", "30"), "cashier")
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(dec("50")))
	// The transfer part hits the ledger immediately, the cash part does not.
	assert.True(t, f.ledgerRepo.balance(model.AccountTransfer).Equal(dec("20")))
	require.Len(t, f.ledgerRepo.movements, 1)

	// Tracked product stock decremented.
	p, err := f.productRepo.FindByID(context.Background(), f.dish.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, p.Stock)
}

func TestCreateCashOnlySalePostsNothing(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.sales.Create(context.Background(), f.request(1, "25", "0", "30"), "cashier")
	require.NoError(t, err)
	assert.True(t, resp.CashReturned.Equal(dec("5")))
	assert.Empty(t, f.ledgerRepo.movements, "cash stays in the till until closure")
}

func TestCreateSaleRejectsBadSplit(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.sales.Create(context.Background(), f.request(1, "10", "10", "10"), "cashier")
	assert.Error(t, err, "cash+transfer must equal the catalog total")
}

func TestCreateSaleBlockedAfterClose(t *testing.T) {
	f := newSaleFixture(t)
	_, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	_, err = f.sales.Create(context.Background(), f.request(1, "25", "0", "25"), "cashier")
	assert.ErrorIs(t, err, service.ErrRegisterClosed)
}

func TestCancelSaleReversesTransferAndStock(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.sales.Create(context.Background(), f.request(2, "0", "50", "0"), "cashier")
	require.NoError(t, err)
	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	cancelled, err := f.sales.Cancel(context.Background(), id, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, cancelled.Status)

	// Income and reversal cancel out; stock restored.
	assert.True(t, f.ledgerRepo.balance(model.AccountTransfer).IsZero())
	assert.Len(t, f.ledgerRepo.movements, 2)
	p, err := f.productRepo.FindByID(context.Background(), f.dish.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Stock)
}

func TestCancelTwiceFails(t *testing.T) {
	f := newSaleFixture(t)
	created, err := f.sales.Create(context.Background(), f.request(1, "25", "0", "25"), "cashier")
	require.NoError(t, err)
	id, _ := uuid.Parse(created.ID)

	_, err = f.sales.Cancel(context.Background(), id, "admin")
	require.NoError(t, err)
	_, err = f.sales.Cancel(context.Background(), id, "admin")
	assert.Error(t, err)
}

func TestCancelledSaleExcludedFromClosure(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.sales.Create(context.Background(), f.request(2, "50", "0", "50"), "cashier")
	require.NoError(t, err)
	id, _ := uuid.Parse(created.ID)
	_, err = f.sales.Cancel(context.Background(), id, "admin")
	require.NoError(t, err)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.TotalCash.IsZero(), "cancelled sales must not count toward the till")
	assert.True(t, resp.CashExcessTransferred.IsZero())
}
