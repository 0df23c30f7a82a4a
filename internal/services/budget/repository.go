package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/podbrief/summary-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the persistence interface for budget periods. It is
// injectable so tests and alternative backends can swap the ledger.
type Repository interface {
	GetPeriod(ctx context.Context, period string) (*models.BudgetPeriod, error)
	AddSpend(ctx context.Context, period string, amount float64) error
}

// repository implements Repository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new budget repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// GetPeriod returns the spend row for a period. A month with no spend yet
// reads as a zero row rather than an error.
func (r *repository) GetPeriod(ctx context.Context, period string) (*models.BudgetPeriod, error) {
	var row models.BudgetPeriod
	err := r.db.WithContext(ctx).First(&row, "period = ?", period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.BudgetPeriod{Period: period, Spent: 0}, nil
		}
		return nil, fmt.Errorf("getting budget period: %w", err)
	}
	return &row, nil
}

// AddSpend atomically increments the period's spend, creating the row on
// first spend of a new month.
func (r *repository) AddSpend(ctx context.Context, period string, amount float64) error {
	row := models.BudgetPeriod{Period: period, Spent: amount}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"spent": gorm.Expr("spent + ?", amount),
			}),
		}).
		Create(&row).Error

	if err != nil {
		return fmt.Errorf("adding spend: %w", err)
	}
	return nil
}
