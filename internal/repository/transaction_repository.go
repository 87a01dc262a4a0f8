package repository

import (
	"context"
	"time"

	"finlens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "user_id", "date", "narration", "amount", "account_ref",
	"category_id", "subcategory_id", "merchant_name", "match_kind",
	"created_at", "updated_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.Date, tx.Narration, tx.Amount, tx.AccountRef,
			tx.CategoryID, tx.SubcategoryID, tx.MerchantName, tx.MatchKind,
			tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, tx := range transactions {
		builder = builder.Values(tx.ID, tx.UserID, tx.Date, tx.Narration, tx.Amount, tx.AccountRef,
			tx.CategoryID, tx.SubcategoryID, tx.MerchantName, tx.MatchKind,
			tx.CreatedAt, tx.UpdatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByUser returns the user's transactions, newest first. Zero
// times leave the date range open on that side.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if !from.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": from})
	}
	if !to.IsZero() {
		query = query.Where(squirrel.LtOrEq{"date": to})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Date, &tx.Narration, &tx.Amount, &tx.AccountRef,
			&tx.CategoryID, &tx.SubcategoryID, &tx.MerchantName, &tx.MatchKind,
			&tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// UpdateClassification rewrites the classification columns of one
// transaction, used after a catalog reload reclassifies stored rows.
func (r *TransactionRepository) UpdateClassification(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("category_id", tx.CategoryID).
		Set("subcategory_id", tx.SubcategoryID).
		Set("merchant_name", tx.MerchantName).
		Set("match_kind", tx.MatchKind).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
