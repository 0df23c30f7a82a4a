package models

import "time"

// BudgetPeriod is one calendar month of recorded spend. Period is the
// month key in "2006-01" form; a new month simply starts a new row, which
// is how the monthly ceiling resets.
type BudgetPeriod struct {
	Period    string    `gorm:"primaryKey;size:7" json:"period"`
	Spent     float64   `gorm:"not null;default:0" json:"spent"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the BudgetPeriod model
func (BudgetPeriod) TableName() string {
	return "budget_periods"
}

// PeriodKey formats a time as a budget period key
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
