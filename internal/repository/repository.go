package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/lib/pq"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// LoadFinances reads every income, expense and investment of a user
func (r *Repository) LoadFinances(ctx context.Context, userID string) (*models.Finances, error) {
	incomes, err := r.listIncomes(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := r.listExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	investments, err := r.listInvestments(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Finances{Incomes: incomes, Expenses: expenses, Investments: investments}, nil
}

// execer is the part of queryer that ensureUser needs
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const upsertUserQuery = `
	INSERT INTO finance.users (id, email)
	VALUES ($1, '')
	ON CONFLICT (id) DO NOTHING`

// ensureUser creates the row of a user known only by its token subject.
// Email and username stay empty until the user is provisioned elsewhere.
func ensureUser(ctx context.Context, q execer, userID string) error {
	if userID == "" {
		return models.ErrMissingUser
	}
	if _, err := q.ExecContext(ctx, upsertUserQuery, userID); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

// withUser runs insert in one transaction after making sure the user row exists
func (r *Repository) withUser(ctx context.Context, userID string, insert func(q queryer) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureUser(ctx, tx, userID); err != nil {
		return err
	}
	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateIncome appends a new income
func (r *Repository) CreateIncome(ctx context.Context, income *models.Income) error {
	return r.withUser(ctx, income.UserID, func(q queryer) error {
		return insertIncome(ctx, q, income)
	})
}

func insertIncome(ctx context.Context, q queryer, income *models.Income) error {
	recType, recDays := recurrenceColumns(income.Recurring)
	query := `
		INSERT INTO finance.incomes (id, user_id, description, amount, date, category, recurring_type, recurring_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := q.QueryRowContext(ctx, query,
		income.ID, income.UserID, income.Description, income.Amount, income.Date,
		string(income.Category), recType, recDays,
	).Scan(&income.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// CreateExpense appends a new expense
func (r *Repository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return r.withUser(ctx, expense.UserID, func(q queryer) error {
		return insertExpense(ctx, q, expense)
	})
}

func insertExpense(ctx context.Context, q queryer, expense *models.Expense) error {
	recType, recDays := recurrenceColumns(expense.Recurring)

	var sourceCategory sql.NullString
	if expense.SourceCategory != nil {
		sourceCategory = sql.NullString{String: string(*expense.SourceCategory), Valid: true}
	}
	var instTotal, instCurrent sql.NullInt64
	if expense.Installment != nil {
		instTotal = sql.NullInt64{Int64: int64(expense.Installment.Total), Valid: true}
		instCurrent = sql.NullInt64{Int64: int64(expense.Installment.Current), Valid: true}
	}

	query := `
		INSERT INTO finance.expenses (id, user_id, description, amount, category, date, source_category,
		                              recurring_type, recurring_days, installment_total, installment_current, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := q.QueryRowContext(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.Amount, expense.Category, expense.Date,
		sourceCategory, recType, recDays, instTotal, instCurrent,
	).Scan(&expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// CreateInvestment appends a new investment
func (r *Repository) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	return r.withUser(ctx, inv.UserID, func(q queryer) error {
		return insertInvestment(ctx, q, inv)
	})
}

func insertInvestment(ctx context.Context, q queryer, inv *models.Investment) error {
	query := `
		INSERT INTO finance.investments (id, user_id, description, amount, rate, period, start_date, is_compound, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := q.QueryRowContext(ctx, query,
		inv.ID, inv.UserID, inv.Description, inv.Amount, inv.Rate, string(inv.Period), inv.StartDate, inv.IsCompound,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// GetInvestment retrieves one investment of a user
func (r *Repository) GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error) {
	query := `
		SELECT id, user_id, description, amount, rate, period, start_date, is_compound, is_finalized, finalized_date, created_at
		FROM finance.investments
		WHERE id = $1 AND user_id = $2`
	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find investment: %w", err)
	}
	return inv, nil
}

// DeleteRecord removes the income, expense or investment with the given id
func (r *Repository) DeleteRecord(ctx context.Context, userID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var deleted int64
	for _, table := range []string{"finance.incomes", "finance.expenses", "finance.investments"} {
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted rows: %w", err)
		}
		deleted += n
	}
	if deleted == 0 {
		return models.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// FinalizeInvestment marks an investment finalized at the given time and stores the
// incomes realizing its value, all in one transaction
func (r *Repository) FinalizeInvestment(ctx context.Context, userID, id string, at time.Time, realized []*models.Income) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE finance.investments
		SET is_finalized = TRUE, finalized_date = $1
		WHERE id = $2 AND user_id = $3 AND NOT is_finalized`, at, id, userID)
	if err != nil {
		return fmt.Errorf("failed to finalize investment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count finalized rows: %w", err)
	}
	if n == 0 {
		return models.ErrInvestmentFinalized
	}

	for _, income := range realized {
		if err := insertIncome(ctx, tx, income); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit finalization: %w", err)
	}
	return nil
}

// ListUsers returns every user with an email address
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, username
		FROM finance.users
		WHERE email <> ''
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) listIncomes(ctx context.Context, userID string) ([]models.Income, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, date, category, recurring_type, recurring_days, created_at
		FROM finance.incomes
		WHERE user_id = $1
		ORDER BY date, created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var (
			in       models.Income
			category string
			recType  sql.NullString
			recDays  pq.Int64Array
		)
		err := rows.Scan(&in.ID, &in.UserID, &in.Description, &in.Amount, &in.Date, &category, &recType, &recDays, &in.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		in.Category = models.IncomeCategory(category)
		in.Recurring = recurrenceFromColumns(recType, recDays)
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (r *Repository) listExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, category, date, source_category,
		       recurring_type, recurring_days, installment_total, installment_current, created_at
		FROM finance.expenses
		WHERE user_id = $1
		ORDER BY date, created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var (
			ex                     models.Expense
			sourceCategory         sql.NullString
			recType                sql.NullString
			recDays                pq.Int64Array
			instTotal, instCurrent sql.NullInt64
		)
		err := rows.Scan(&ex.ID, &ex.UserID, &ex.Description, &ex.Amount, &ex.Category, &ex.Date, &sourceCategory,
			&recType, &recDays, &instTotal, &instCurrent, &ex.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if sourceCategory.Valid {
			c := models.IncomeCategory(sourceCategory.String)
			ex.SourceCategory = &c
		}
		ex.Recurring = recurrenceFromColumns(recType, recDays)
		if instTotal.Valid {
			inst := models.Installment{Total: int(instTotal.Int64), Current: int(instCurrent.Int64)}
			inst.Remaining = inst.Left()
			ex.Installment = &inst
		}
		expenses = append(expenses, ex)
	}
	return expenses, rows.Err()
}

func (r *Repository) listInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, rate, period, start_date, is_compound, is_finalized, finalized_date, created_at
		FROM finance.investments
		WHERE user_id = $1
		ORDER BY start_date, created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInvestment(s scanner) (*models.Investment, error) {
	var (
		inv       models.Investment
		period    string
		finalized sql.NullTime
	)
	err := s.Scan(&inv.ID, &inv.UserID, &inv.Description, &inv.Amount, &inv.Rate, &period, &inv.StartDate,
		&inv.IsCompound, &inv.IsFinalized, &finalized, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	inv.Period = models.RatePeriod(period)
	if finalized.Valid {
		inv.FinalizedDate = &finalized.Time
	}
	return &inv, nil
}

func recurrenceColumns(rec *models.Recurrence) (sql.NullString, interface{}) {
	if rec == nil {
		return sql.NullString{}, nil
	}
	days := make([]int64, len(rec.Days))
	for i, d := range rec.Days {
		days[i] = int64(d)
	}
	return sql.NullString{String: string(rec.Type), Valid: true}, pq.Array(days)
}

func recurrenceFromColumns(recType sql.NullString, recDays pq.Int64Array) *models.Recurrence {
	if !recType.Valid {
		return nil
	}
	rec := &models.Recurrence{Type: models.RecurrenceType(recType.String)}
	for _, d := range recDays {
		rec.Days = append(rec.Days, int(d))
	}
	return rec
}
