package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/config"
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/Dan9191/finance-tracker/internal/projection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the service needs
type Store interface {
	LoadFinances(ctx context.Context, userID string) (*models.Finances, error)
	CreateIncome(ctx context.Context, income *models.Income) error
	CreateExpense(ctx context.Context, expense *models.Expense) error
	CreateInvestment(ctx context.Context, inv *models.Investment) error
	GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error)
	DeleteRecord(ctx context.Context, userID, id string) error
	FinalizeInvestment(ctx context.Context, userID, id string, at time.Time, realized []*models.Income) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Projection views a client may ask for. Each user gets at most one cached
// deduplicated list per view.
const (
	ViewDefault      = "default"
	ViewDashboard    = "dashboard"
	ViewTransactions = "transactions"
	ViewUpcoming     = "upcoming"
)

var knownViews = map[string]bool{
	ViewDefault:      true,
	ViewDashboard:    true,
	ViewTransactions: true,
	ViewUpcoming:     true,
}

// dedupCacheSize bounds the cached projections across all users and views
const dedupCacheSize = 1024

// RateProvider supplies the annual reference key rate, in percent
type RateProvider interface {
	GetKeyRate(ctx context.Context) (float64, error)
}

// Service handles business logic
type Service struct {
	repo   Store
	rates  RateProvider
	log    *logrus.Logger
	config *config.Config
	dedup  *projection.Deduplicator
	now    func() time.Time
}

// NewService initializes a new service
func NewService(repo Store, rates RateProvider, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		rates:  rates,
		log:    log,
		config: cfg,
		dedup:  projection.NewDeduplicator(dedupCacheSize),
		now:    time.Now,
	}
}

// Finances returns the user's full snapshot. Without a user it is empty.
func (s *Service) Finances(ctx context.Context, userID string) (*models.Finances, error) {
	if userID == "" {
		return emptyFinances(), nil
	}
	f, err := s.repo.LoadFinances(ctx, userID)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// AddIncome validates and stores a new income
func (s *Service) AddIncome(ctx context.Context, userID string, params models.CreateIncomeParams) (*models.Income, error) {
	if userID == "" {
		return nil, models.ErrMissingUser
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	income := &models.Income{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		Category:    params.Category,
		Recurring:   params.Recurring,
	}
	if err := s.repo.CreateIncome(ctx, income); err != nil {
		return nil, err
	}

	s.log.Infof("Income %s created for user %s: %.2f %s", income.ID, userID, income.Amount, income.Category)
	return income, nil
}

// AddExpense validates and stores a new expense
func (s *Service) AddExpense(ctx context.Context, userID string, params models.CreateExpenseParams) (*models.Expense, error) {
	if userID == "" {
		return nil, models.ErrMissingUser
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	expense := &models.Expense{
		ID:             uuid.NewString(),
		UserID:         userID,
		Description:    params.Description,
		Amount:         params.Amount,
		Category:       params.Category,
		Date:           params.Date,
		SourceCategory: params.SourceCategory,
		Recurring:      params.Recurring,
		Installment:    params.Installment,
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.log.Infof("Expense %s created for user %s: %.2f %s", expense.ID, userID, expense.Amount, expense.Category)
	return expense, nil
}

// AddInvestment validates and stores a new investment. With UseKeyRate and no rate,
// the current reference key rate is applied as an annual rate.
func (s *Service) AddInvestment(ctx context.Context, userID string, params models.CreateInvestmentParams) (*models.Investment, error) {
	if userID == "" {
		return nil, models.ErrMissingUser
	}
	if params.UseKeyRate && params.Rate == 0 {
		rate, err := s.rates.GetKeyRate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get key rate: %w", err)
		}
		params.Rate = rate
		params.Period = models.PeriodAnnual
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	inv := &models.Investment{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: params.Description,
		Amount:      params.Amount,
		Rate:        params.Rate,
		Period:      params.Period,
		StartDate:   params.StartDate,
		IsCompound:  params.IsCompound,
	}
	if err := s.repo.CreateInvestment(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Infof("Investment %s created for user %s: %.2f at %.4f%% %s", inv.ID, userID, inv.Amount, inv.Rate, inv.Period)
	return inv, nil
}

// DeleteTransaction deletes a stored record. A generated transaction id deletes the
// record it was generated from. The id actually deleted is returned.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) (string, error) {
	if userID == "" {
		return "", models.ErrMissingUser
	}
	origin := projection.ParseOrigin(id)
	if err := s.repo.DeleteRecord(ctx, userID, origin.ParentID); err != nil {
		return "", err
	}

	s.log.Infof("Record %s deleted for user %s (requested %s, %s)", origin.ParentID, userID, id, origin.Kind)
	return origin.ParentID, nil
}

// FinalizeInvestment realizes the current value of an investment as two incomes,
// principal and returns, and removes it from future projections. The returns income
// is left out when there is nothing to realize.
func (s *Service) FinalizeInvestment(ctx context.Context, userID, id string) (*models.FinalizationResult, error) {
	if userID == "" {
		return nil, models.ErrMissingUser
	}
	inv, err := s.repo.GetInvestment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv.IsFinalized {
		return nil, models.ErrInvestmentFinalized
	}

	at := s.now()
	currentValue := projection.CurrentValue(*inv, at)
	returns, _ := decimal.NewFromFloat(currentValue).Sub(decimal.NewFromFloat(inv.Amount)).Round(2).Float64()
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	result := &models.FinalizationResult{
		Investment:   inv,
		CurrentValue: currentValue,
		Principal: &models.Income{
			ID:          uuid.NewString(),
			UserID:      userID,
			Description: fmt.Sprintf("%s (principal)", inv.Description),
			Amount:      inv.Amount,
			Date:        day,
			Category:    models.IncomeOther,
		},
	}
	realized := []*models.Income{result.Principal}
	if returns > 0 {
		result.Returns = &models.Income{
			ID:          uuid.NewString(),
			UserID:      userID,
			Description: fmt.Sprintf("%s (returns)", inv.Description),
			Amount:      returns,
			Date:        day,
			Category:    models.IncomeInvestmentReturns,
		}
		realized = append(realized, result.Returns)
	}

	if err := s.repo.FinalizeInvestment(ctx, userID, id, at, realized); err != nil {
		return nil, err
	}
	inv.IsFinalized = true
	inv.FinalizedDate = &at

	s.log.Infof("Investment %s finalized for user %s: value %.2f (principal %.2f, returns %.2f)",
		id, userID, currentValue, inv.Amount, returns)
	return result, nil
}

// FutureTransactions projects the user's records over the configured lookahead window
// and deduplicates the result. view names one list of the client and scopes the dedup
// cache; an empty view is the default one and unknown views are rejected.
func (s *Service) FutureTransactions(ctx context.Context, userID, view string) ([]models.FutureTransaction, error) {
	if view == "" {
		view = ViewDefault
	}
	if !knownViews[view] {
		return nil, fmt.Errorf("%w: unknown view %q", models.ErrInvalidInput, view)
	}
	f, err := s.Finances(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := projection.Project(*f, projection.Options{Now: s.now(), LookaheadMonths: s.config.LookaheadMonths})
	return s.dedup.Dedup(userID+"/"+view, list), nil
}

// UpcomingExpenses lists the projected expenses due within the next days days
func (s *Service) UpcomingExpenses(ctx context.Context, userID string, days int) ([]models.FutureTransaction, error) {
	list, err := s.FutureTransactions(ctx, userID, ViewUpcoming)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, days)

	var upcoming []models.FutureTransaction
	for _, t := range list {
		if t.Type != models.TypeExpense || !t.Date.After(today) || t.Date.After(until) {
			continue
		}
		upcoming = append(upcoming, t)
	}
	return upcoming, nil
}

// Balance summarizes the user's balances
func (s *Service) Balance(ctx context.Context, userID string) (models.BalanceSummary, error) {
	f, err := s.Finances(ctx, userID)
	if err != nil {
		return models.BalanceSummary{}, err
	}
	return projection.Summarize(*f), nil
}

// KeyRate returns the current reference key rate
func (s *Service) KeyRate(ctx context.Context) (float64, error) {
	return s.rates.GetKeyRate(ctx)
}

// Users lists the users to notify
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func emptyFinances() *models.Finances {
	return &models.Finances{
		Incomes:     []models.Income{},
		Expenses:    []models.Expense{},
		Investments: []models.Investment{},
	}
}
