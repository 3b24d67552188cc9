package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreateExpense persists a new expense with its splits and shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, total_amount, payee_id, payee_name, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.TotalAmount, expense.PayeeID, expense.PayeeName,
		string(expense.SplitType()), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, position, participant_id, participant_name, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, i, split.ParticipantID, split.ParticipantName, split.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if detail, ok := expense.Detail.(models.ProportionalSplit); ok {
		// Sorted so the stored rows are deterministic.
		ids := make([]string, 0, len(detail.Shares))
		for id := range detail.Shares {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_shares (expense_id, participant_id, weight) VALUES (?, ?, ?)",
				expense.ID, id, detail.Shares[id],
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including splits and detail.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, description, total_amount, payee_id, payee_name, split_type, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	)
	expense, splitType, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %w: %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	splits, err := s.loadSplits(ctx, "WHERE expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	shares, err := s.loadShares(ctx, "WHERE expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}

	expense.Splits = splits[expense.ID]
	expense.Detail = buildDetail(splitType, expense.Splits, shares[expense.ID])
	return expense, nil
}

// ListExpenses returns all expenses in the order they were recorded.
// Splits and shares are loaded with one query each rather than per expense.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, total_amount, payee_id, payee_name, split_type, created_at
		 FROM expenses ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	splitTypes := []models.SplitType{}
	for rows.Next() {
		expense, splitType, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
		splitTypes = append(splitTypes, splitType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splits, err := s.loadSplits(ctx, "")
	if err != nil {
		return nil, err
	}
	shares, err := s.loadShares(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		e := &expenses[i]
		e.Splits = splits[e.ID]
		e.Detail = buildDetail(splitTypes[i], e.Splits, shares[e.ID])
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its splits.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %w: %s", storage.ErrNotFound, expenseID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanExpense(row rowScanner) (*models.Expense, models.SplitType, error) {
	var e models.Expense
	var splitType string
	err := row.Scan(&e.ID, &e.Description, &e.TotalAmount, &e.PayeeID, &e.PayeeName, &splitType, &e.CreatedAt)
	if err != nil {
		return nil, "", err
	}
	return &e, models.SplitType(splitType), nil
}

// loadSplits returns splits keyed by expense ID, each slice in position order.
func (s *SQLiteStore) loadSplits(ctx context.Context, where string, args ...any) (map[string][]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, participant_id, participant_name, amount FROM expense_splits "+where+" ORDER BY expense_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]models.ExpenseSplit)
	for rows.Next() {
		var expenseID string
		var split models.ExpenseSplit
		if err := rows.Scan(&expenseID, &split.ParticipantID, &split.ParticipantName, &split.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits[expenseID] = append(splits[expenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// loadShares returns proportional weights keyed by expense ID.
func (s *SQLiteStore) loadShares(ctx context.Context, where string, args ...any) (map[string]map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, participant_id, weight FROM expense_shares "+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[string]map[string]float64)
	for rows.Next() {
		var expenseID, participantID string
		var weight float64
		if err := rows.Scan(&expenseID, &participantID, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		if shares[expenseID] == nil {
			shares[expenseID] = make(map[string]float64)
		}
		shares[expenseID][participantID] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}

// buildDetail reconstructs the split detail. Unequal amounts are recovered
// from the splits themselves.
func buildDetail(splitType models.SplitType, splits []models.ExpenseSplit, shares map[string]float64) models.SplitDetail {
	switch splitType {
	case models.SplitUnequal:
		amounts := make(map[string]float64, len(splits))
		for _, s := range splits {
			amounts[s.ParticipantID] = s.Amount
		}
		return models.UnequalSplit{Amounts: amounts}
	case models.SplitProportional:
		if shares == nil {
			shares = map[string]float64{}
		}
		return models.ProportionalSplit{Shares: shares}
	default:
		return models.EqualSplit{}
	}
}
