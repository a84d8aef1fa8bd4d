package dto

import "github.com/shopspring/decimal"

// Reporting data shapes. Formatting (CSV, print layouts) is a frontend
// concern — these endpoints only return the numbers.

type DailyStatsResponse struct {
	Date          string          `json:"date"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalPayments decimal.Decimal `json:"total_payments"`
}

type MonthlyStatsResponse struct {
	Month         string          `json:"month"` // YYYY-MM
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalPayments decimal.Decimal `json:"total_payments"`
}

type ProductStatsResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}
