package models

// FinancialSummary totals a filtered set of entries. Pending and received
// amounts count income only.
type FinancialSummary struct {
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpense   float64 `json:"totalExpense"`
	PendingAmount  float64 `json:"pendingAmount"`
	ReceivedAmount float64 `json:"receivedAmount"`
	NetBalance     float64 `json:"netBalance"`
}

// IncomeExpense is one bucket of a monthly or yearly breakdown.
type IncomeExpense struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// StatusDistribution splits entry amounts by status.
type StatusDistribution struct {
	Pending  float64 `json:"pending"`
	Received float64 `json:"received"`
}
