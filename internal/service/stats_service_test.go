package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(t *testing.T) (*closureFixture, service.StatsService) {
	f := newClosureFixture(t, "500")
	svc := service.NewStatsService(f.saleRepo, f.expenseRepo, f.paymentRepo, f.configRepo, time.Local)
	return f, svc
}

func TestDailyStatsAggregates(t *testing.T) {
	f, svc := newStatsFixture(t)
	f.addSale("100", "50", "100", "0")
	f.addCashExpense("30", true)
	f.addCashPayment("60", false)

	resp, err := svc.Daily(context.Background(), time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	assert.True(t, resp.TotalSales.Equal(dec("150")))
	assert.True(t, resp.TotalExpenses.Equal(dec("30")))
	assert.True(t, resp.TotalPayments.Equal(dec("60")))
}

func TestMonthlyStatsRejectsBadMonth(t *testing.T) {
	_, svc := newStatsFixture(t)
	_, err := svc.Monthly(context.Background(), "2026/08")
	assert.Error(t, err)
}

func TestTopAndBottomProducts(t *testing.T) {
	f, svc := newStatsFixture(t)

	addItemSale := func(name string, qty int, unit string) {
		total := dec(unit).Mul(decimal.NewFromInt(int64(qty)))
		_ = f.saleRepo.Create(context.Background(), nil, &model.Sale{
			Items: model.SaleItems{{
				ProductID:   name, // stable key for the test
				ProductName: name,
				Quantity:    qty,
				UnitPrice:   dec(unit),
				Total:       total,
			}},
			Subtotal:      total,
			Total:         total,
			CashAmount:    total,
			PaymentMethod: model.PaymentCash,
			Status:        model.SaleCompleted,
		})
	}
	addItemSale("Ceviche", 10, "25")
	addItemSale("Lemonade", 3, "5")
	addItemSale("Ceviche", 5, "25")

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)

	top, err := svc.TopProducts(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Ceviche", top[0].ProductName)
	assert.Equal(t, 15, top[0].TotalQuantity)
	assert.True(t, top[0].TotalRevenue.Equal(dec("375")))

	bottom, err := svc.BottomProducts(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, "Lemonade", bottom[0].ProductName)
}
