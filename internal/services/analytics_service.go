package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/ledger"
	"homebudget/internal/models"
	"homebudget/internal/money"
	"homebudget/internal/period"
)

// Uncategorized labels expenses without a category in reports.
const Uncategorized = "uncategorized"

// analyticsService aggregates a user's expenses and incomes.
type analyticsService struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer. clock supplies the
// reference time for named periods; nil means time.Now.
func NewAnalyticsService(db *gorm.DB, clock func() time.Time) AnalyticsServicer {
	if clock == nil {
		clock = time.Now
	}
	return &analyticsService{db: db, clock: clock}
}

type sumRow struct {
	Total int64
	Cnt   int64
}

type labelRow struct {
	Label string
	Total int64
}

const sumSelect = "CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total, COUNT(*) AS cnt"

// Summary resolves the period and aggregates the user's records in one
// transaction so every figure comes from the same snapshot.
func (s *analyticsService) Summary(ctx context.Context, userID string, q period.Query) (*Summary, error) {
	rng, err := period.Resolve(s.clock(), q)
	if err != nil {
		if errors.Is(err, period.ErrInvalidRange) {
			return nil, apperrors.ErrInvalidRange
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, err.Error())
	}

	summary := &Summary{
		Period:     PeriodInfo{Name: rng.Label, From: rng.Start, To: rng.End},
		ByCategory: []CategoryTotal{},
		BySource:   []SourceTotal{},
	}

	err = withTx(ctx, s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "balance").Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return dbError(err)
		}

		inRange := func(table string) func(*gorm.DB) *gorm.DB {
			return func(q *gorm.DB) *gorm.DB {
				return q.Where(table+".user_id = ? AND "+table+".created_at >= ? AND "+table+".created_at <= ?", userID, rng.Start, rng.End)
			}
		}

		var spent, earned, lifeSpent, lifeEarned sumRow
		if err := tx.Model(&models.Expense{}).Select(sumSelect).Scopes(inRange("expenses")).Scan(&spent).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Model(&models.Income{}).Select(sumSelect).Scopes(inRange("incomes")).Scan(&earned).Error; err != nil {
			return dbError(err)
		}

		var categories []labelRow
		if err := tx.Table("expenses").
			Select("COALESCE(categories.name, '" + Uncategorized + "') AS label, CAST(SUM(expenses.amount) AS BIGINT) AS total").
			Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
			Scopes(inRange("expenses")).
			Group("COALESCE(categories.name, '" + Uncategorized + "')").
			Order("total DESC, label ASC").
			Scan(&categories).Error; err != nil {
			return dbError(err)
		}

		var sources []labelRow
		if err := tx.Table("incomes").
			Select("incomes.description AS label, CAST(SUM(incomes.amount) AS BIGINT) AS total").
			Scopes(inRange("incomes")).
			Group("incomes.description").
			Order("total DESC, label ASC").
			Scan(&sources).Error; err != nil {
			return dbError(err)
		}

		if err := tx.Model(&models.Expense{}).Select(sumSelect).Where("user_id = ?", userID).Scan(&lifeSpent).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Model(&models.Income{}).Select(sumSelect).Where("user_id = ?", userID).Scan(&lifeEarned).Error; err != nil {
			return dbError(err)
		}

		summary.Totals = Totals{
			Spent:         money.FromCents(spent.Total),
			Earned:        money.FromCents(earned.Total),
			Net:           money.FromCents(earned.Total - spent.Total),
			CountExpenses: spent.Cnt,
			CountIncomes:  earned.Cnt,
		}
		for _, r := range categories {
			summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: r.Label, Total: money.FromCents(r.Total)})
		}
		for _, r := range sources {
			summary.BySource = append(summary.BySource, SourceTotal{Source: r.Label, Total: money.FromCents(r.Total)})
		}
		summary.Account = AccountSnapshot{
			CurrentBalance: user.Balance,
			LifetimeSpent:  money.FromCents(lifeSpent.Total),
			LifetimeEarned: money.FromCents(lifeEarned.Total),
			InitialEstimate: ledger.InitialEstimate(user.Balance,
				money.FromCents(lifeSpent.Total), money.FromCents(lifeEarned.Total)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
