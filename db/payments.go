package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsite/entity"
	"eventsite/event"
	"eventsite/message"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PersistenceError means the persistence collaborator rejected or failed the
// write. The caller's input is retained so the user can retry.
type PersistenceError struct {
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("save failed: %s", e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

func CreatePaymentsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS payments (
		order_id UUID PRIMARY KEY,
		ticket VARCHAR(32) NOT NULL,
		quantity INTEGER NOT NULL,
		original_total NUMERIC(10, 2) NOT NULL,
		discount_amount NUMERIC(10, 2) NOT NULL,
		promo_code VARCHAR(32) NOT NULL DEFAULT '',
		total NUMERIC(10, 2) NOT NULL,
		package_id VARCHAR(32) NOT NULL,
		method VARCHAR(16) NOT NULL,
		photo_data_uri TEXT NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(16) NOT NULL,
		age INTEGER NOT NULL,
		need_transportation BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);`)
	return err
}

type PaymentRepo struct {
	db     *sqlx.DB
	logger watermill.LoggerAdapter
}

func NewPaymentRepo(db *sqlx.DB, logger watermill.LoggerAdapter) PaymentRepo {
	return PaymentRepo{
		db:     db,
		logger: logger,
	}
}

// AddPayment stores the record and stages a PaymentSubmitted event in the
// same transaction.
func (r PaymentRepo) AddPayment(ctx context.Context, payment entity.PaymentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return PersistenceError{Err: fmt.Errorf("beginning transaction: %w", err)}
	}

	if err := r.add(ctx, tx, payment); err != nil {
		return PersistenceError{Err: errors.Join(err, tx.Rollback())}
	}

	if err := tx.Commit(); err != nil {
		return PersistenceError{Err: fmt.Errorf("committing transaction: %w", err)}
	}

	return nil
}

func (r PaymentRepo) add(ctx context.Context, tx *sql.Tx, payment entity.PaymentRecord) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO payments
		(order_id, ticket, quantity, original_total, discount_amount, promo_code,
		total, package_id, method, photo_data_uri, name, email, phone, age, need_transportation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		payment.OrderID, payment.Ticket, payment.Quantity, payment.OriginalTotal,
		payment.DiscountAmount, payment.PromoCode, payment.Total, payment.PackageID,
		payment.Method, payment.PhotoDataURI, payment.Name, payment.Email,
		payment.Phone, payment.Age, payment.NeedTransport)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	e := event.NewPaymentSubmitted(payment.OrderID, payment)
	if err := message.PublishInTx(ctx, e, tx, r.logger); err != nil {
		return fmt.Errorf("publishing event in transaction: %w", err)
	}

	return nil
}

func (r PaymentRepo) Get(ctx context.Context, orderID string) (entity.PaymentRecord, error) {
	var payment entity.PaymentRecord
	err := r.db.GetContext(ctx, &payment, `SELECT order_id, ticket, quantity,
		original_total, discount_amount, promo_code, total, package_id, method,
		photo_data_uri, name, email, phone, age, need_transportation
		FROM payments WHERE order_id = $1`, orderID)
	if err != nil {
		return entity.PaymentRecord{}, fmt.Errorf("querying payment: %w", err)
	}

	return payment, nil
}
