package domain

import "github.com/shopspring/decimal"

// MonthlyStats aggregates one user's completed transactions over a calendar month.
type MonthlyStats struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	ByCategory       map[string]decimal.Decimal
	TransactionCount int
}

// ComputeMonthlyStats folds a month of transactions into report totals.
// Categories are tracked for expenses only, matching the report email.
func ComputeMonthlyStats(transactions []*Transaction) MonthlyStats {
	stats := MonthlyStats{
		ByCategory:       make(map[string]decimal.Decimal),
		TransactionCount: len(transactions),
	}

	for _, tx := range transactions {
		switch tx.Type {
		case TransactionTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		case TransactionTypeExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(tx.Amount)
			stats.ByCategory[tx.Category] = stats.ByCategory[tx.Category].Add(tx.Amount)
		}
	}

	return stats
}

// ReceiptScan is the structured result of running a receipt image through the model.
type ReceiptScan struct {
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	MerchantName string          `json:"merchantName"`
	Category     string          `json:"category"`
}
