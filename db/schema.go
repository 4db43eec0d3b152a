package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func InitialiseDB(ctx context.Context, db *sqlx.DB) error {
	if err := CreatePaymentsTable(ctx, db); err != nil {
		return fmt.Errorf("creating payments table: %w", err)
	}

	if err := CreateRegistrationsTable(ctx, db); err != nil {
		return fmt.Errorf("creating workshop registrations table: %w", err)
	}

	return nil
}
