package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const reopenPassword = "open-sesame"

type closureFixture struct {
	ledgerRepo  *fakeLedgerRepo
	closureRepo *fakeClosureRepo
	saleRepo    *fakeSaleRepo
	expenseRepo *fakeExpenseRepo
	paymentRepo *fakePaymentRepo
	productRepo *fakeProductRepo
	configRepo  *fakeConfigRepo

	ledger  service.LedgerService
	closure service.ClosureService
}

func newClosureFixture(t *testing.T, dailyBase string) *closureFixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(reopenPassword), bcrypt.MinCost)
	require.NoError(t, err)

	f := &closureFixture{
		ledgerRepo:  &fakeLedgerRepo{},
		closureRepo: newFakeClosureRepo(),
		saleRepo:    newFakeSaleRepo(),
		expenseRepo: &fakeExpenseRepo{},
		paymentRepo: &fakePaymentRepo{},
		productRepo: newFakeProductRepo(),
		configRepo:  newFakeConfigRepo(dec(dailyBase), string(hash)),
	}
	f.ledger = service.NewLedgerService(f.ledgerRepo)
	f.closure = service.NewClosureService(
		f.closureRepo, f.saleRepo, f.expenseRepo, f.paymentRepo,
		f.productRepo, f.configRepo, f.ledger, nil, time.Local,
	)
	return f
}

func (f *closureFixture) addCashSale(cash string) {
	f.addSale(cash, "0", "0", "0")
}

// addSale inserts a completed sale for today with the given splits.
func (f *closureFixture) addSale(cash, transfer, received, returned string) {
	total := dec(cash).Add(dec(transfer))
	_ = f.saleRepo.Create(context.Background(), nil, &model.Sale{
		Items:          model.SaleItems{},
		Subtotal:       total,
		Total:          total,
		CashAmount:     dec(cash),
		TransferAmount: dec(transfer),
		CashReceived:   dec(received),
		CashReturned:   dec(returned),
		PaymentMethod:  model.PaymentMixed,
		Status:         model.SaleCompleted,
	})
}

func (f *closureFixture) addCashExpense(amount string, fromRegister bool) {
	_ = f.expenseRepo.Create(context.Background(), nil, &model.Expense{
		Description:      "supplies",
		Amount:           dec(amount),
		Category:         "general",
		PaymentMethod:    model.PaymentCash,
		FromCashRegister: fromRegister,
	})
}

func (f *closureFixture) addCashPayment(amount string, fromRegister bool) {
	_ = f.paymentRepo.Create(context.Background(), nil, &model.EmployeePayment{
		EmployeeID:       uuid.New(),
		EmployeeName:     "Ana",
		Position:         "cook",
		BaseAmount:       dec(amount),
		FinalAmount:      dec(amount),
		PaymentMethod:    model.PaymentCash,
		FromCashRegister: fromRegister,
	})
}

func TestCloseSweepsExcessAboveDailyBase(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("800")
	f.addCashExpense("100", true)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	// Till held 500 + 800 − 100 = 1200; everything above the 500 base moves
	// to saved cash.
	assert.True(t, resp.CashExcessTransferred.Equal(dec("700")),
		"expected 700, got %s", resp.CashExcessTransferred)
	assert.True(t, resp.DailyBase.Equal(dec("500")))
	assert.True(t, f.ledgerRepo.balance(model.AccountSavedCash).Equal(dec("700")))
	require.Len(t, f.ledgerRepo.movements, 1)
	assert.Equal(t, model.DirectionIncome, f.ledgerRepo.movements[0].Direction)
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newClosureFixture(t, "300")
	f.addCashSale("500")

	first, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	// Add activity after the close; the second call must return the original
	// snapshot untouched and post nothing new.
	f.addCashSale("999")
	second, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.CashExcessTransferred.Equal(dec("200")))
	assert.Len(t, f.ledgerRepo.movements, 1, "only one sweep movement per date")
}

func TestCloseConcurrentRaceReturnsWinner(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("600")

	// Another close commits between our existence check and our insert.
	winner := &model.DailyClosure{
		ID:                    uuid.New(),
		Date:                  time.Now().Format("2006-01-02"),
		TotalCash:             dec("600"),
		DailyBase:             dec("500"),
		CashExcessTransferred: dec("100"),
	}
	f.closureRepo.failNextCreate = true
	f.closureRepo.raceWinner = winner

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, winner.ID.String(), resp.ID, "loser must surface the winner's closure")
}

func TestCloseNoExcessPostsNothing(t *testing.T) {
	f := newClosureFixture(t, "500")
	// Cash in equals cash out: till ends exactly at base.
	f.addCashSale("200")
	f.addCashExpense("200", true)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.CashExcessTransferred.IsZero())
	assert.Empty(t, f.ledgerRepo.movements, "zero excess must not post a movement")
}

func TestCloseTillBelowBaseTransfersNothing(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("100")
	f.addCashPayment("300", true)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.CashExcessTransferred.IsZero(), "shortage never becomes a negative sweep")
	assert.Empty(t, f.ledgerRepo.movements)
}

func TestCloseIgnoresChangeHandling(t *testing.T) {
	f := newClosureFixture(t, "500")
	// Customer paid 100 in cash with a 50k bill; the change given back must
	// not distort the till math.
	f.addSale("100", "0", "50000", "49900")

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.CashExcessTransferred.Equal(dec("100")))
}

func TestCloseIgnoresSavedCashOutflows(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("400")
	// Paid in cash but from stored cash, not the till.
	f.addCashExpense("250", false)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.CashExcessTransferred.Equal(dec("400")),
		"saved-cash outflows must not reduce the till excess")
}

func TestCloseSnapshotsLowStock(t *testing.T) {
	f := newClosureFixture(t, "0")
	f.productRepo.add("Lemonade", dec("5"), 2, 10, true)
	f.productRepo.add("Fish soup", dec("12"), 50, 5, true)
	f.productRepo.add("Untracked", dec("3"), 0, 10, false)

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	require.Len(t, resp.LowStockProducts, 1)
	assert.Equal(t, "Lemonade", resp.LowStockProducts[0].ProductName)
	assert.Equal(t, 18, resp.LowStockProducts[0].SuggestedOrder)
}

func TestReopenWrongPassword(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("800")
	_, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	_, err = f.closure.Reopen(context.Background(), "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	closed, err := f.closure.IsClosedToday(context.Background())
	require.NoError(t, err)
	assert.True(t, closed, "failed reopen must leave the closure intact")
	assert.Len(t, f.ledgerRepo.movements, 1, "no reversal posted")
}

func TestReopenRevertsStoredExcess(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("800")
	_, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	// Change the configured base after the close; the reversal must use the
	// amount the closure recorded, not a recomputation.
	cfg, _ := f.configRepo.Get(context.Background())
	cfg.DailyBase = dec("9999")
	require.NoError(t, f.configRepo.Update(context.Background(), cfg))

	resp, err := f.closure.Reopen(context.Background(), reopenPassword)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.RevertedAmount.Equal(dec("300")))

	closed, err := f.closure.IsClosedToday(context.Background())
	require.NoError(t, err)
	assert.False(t, closed)
	assert.True(t, f.ledgerRepo.balance(model.AccountSavedCash).IsZero(),
		"sweep and reversal must cancel out")
}

func TestReopenWhenAlreadyOpenIsBenign(t *testing.T) {
	f := newClosureFixture(t, "500")

	resp, err := f.closure.Reopen(context.Background(), reopenPassword)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.RevertedAmount.IsZero())
	assert.Empty(t, f.ledgerRepo.movements)
}

func TestCloseReopenCloseRoundTrip(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("800")

	_, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	_, err = f.closure.Reopen(context.Background(), reopenPassword)
	require.NoError(t, err)

	// More activity after reopening, then close again.
	f.addCashSale("200")
	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	assert.True(t, resp.CashExcessTransferred.Equal(dec("500")))
	// +300 sweep, −300 reversal, +500 sweep.
	assert.True(t, f.ledgerRepo.balance(model.AccountSavedCash).Equal(dec("500")))
}

func TestDailyCashSummaryPreview(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addSale("800", "150", "1000", "200")
	f.addCashExpense("100", true)
	f.addCashPayment("50", true)

	sum, err := f.closure.DailyCashSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.ExpectedCash.Equal(dec("1150"))) // 500 + 800 − 100 − 50
	assert.True(t, sum.ExcessToTransfer.Equal(dec("650")))
	assert.True(t, sum.CashReceived.Equal(dec("1000")))
	assert.True(t, sum.CashReturned.Equal(dec("200")))
}

func TestCurrentCashReflectsClosure(t *testing.T) {
	f := newClosureFixture(t, "500")
	f.addCashSale("300")

	before, err := f.closure.CurrentCash(context.Background())
	require.NoError(t, err)
	assert.False(t, before.IsClosed)
	assert.True(t, before.CurrentCash.Equal(dec("800")))

	_, err = f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	after, err := f.closure.CurrentCash(context.Background())
	require.NoError(t, err)
	assert.True(t, after.IsClosed)
	assert.True(t, after.CurrentCash.Equal(dec("500")), "closed till holds exactly the base")
	assert.True(t, after.ExcessTransferred.Equal(dec("300")))
}

func TestCloseCapturesConfiguredBase(t *testing.T) {
	f := newClosureFixture(t, "250")
	f.addCashSale("400")

	resp, err := f.closure.Close(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, resp.DailyBase.Equal(dec("250")))
	assert.True(t, resp.CashExcessTransferred.Equal(dec("400")))

	stored, err := f.closureRepo.FindByDate(context.Background(), time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(stored.DailyBase))
}

func TestCloseBucketsDinnerSalesByBusinessDate(t *testing.T) {
	// Timestamps are stored as UTC instants. A dinner sale in a UTC−5
	// restaurant lands past midnight UTC, yet it belongs to the local day's
	// closure; day filtering must use instant bounds in the restaurant's
	// timezone, never the storage timezone's calendar date.
	loc := time.FixedZone("UTC-5", -5*60*60)
	hash, err := bcrypt.GenerateFromPassword([]byte(reopenPassword), bcrypt.MinCost)
	require.NoError(t, err)

	ledgerRepo := &fakeLedgerRepo{}
	saleRepo := newFakeSaleRepo()
	ledger := service.NewLedgerService(ledgerRepo)
	closure := service.NewClosureService(
		newFakeClosureRepo(), saleRepo, &fakeExpenseRepo{}, &fakePaymentRepo{},
		newFakeProductRepo(), newFakeConfigRepo(dec("100"), string(hash)),
		ledger, nil, loc,
	)

	now := time.Now().In(loc)
	dinner := time.Date(now.Year(), now.Month(), now.Day(), 20, 0, 0, 0, loc)
	lastNight := dinner.AddDate(0, 0, -1)

	addSaleAt := func(cash string, at time.Time) {
		amount := dec(cash)
		require.NoError(t, saleRepo.Create(context.Background(), nil, &model.Sale{
			Items:         model.SaleItems{},
			Subtotal:      amount,
			Total:         amount,
			CashAmount:    amount,
			PaymentMethod: model.PaymentCash,
			Status:        model.SaleCompleted,
			CreatedAt:     at.UTC(),
		}))
	}
	addSaleAt("400", dinner)
	addSaleAt("999", lastNight)

	resp, err := closure.Close(context.Background(), "admin")
	require.NoError(t, err)

	assert.True(t, resp.TotalCash.Equal(dec("400")),
		"expected 400 cash today, got %s", resp.TotalCash)
	assert.True(t, resp.CashExcessTransferred.Equal(dec("300")))
	require.Len(t, resp.Sales, 1, "yesterday's sale must not leak into today's closure")
}
