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
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func CreateRegistrationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS workshop_registrations (
		id UUID PRIMARY KEY,
		workshop_id VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(16) NOT NULL,
		age INTEGER NOT NULL,
		governorate VARCHAR(255) NOT NULL,
		program_title VARCHAR(255) NOT NULL,
		group_link VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);`)
	return err
}

type RegistrationRepo struct {
	db     *sqlx.DB
	logger watermill.LoggerAdapter
}

func NewRegistrationRepo(db *sqlx.DB, logger watermill.LoggerAdapter) RegistrationRepo {
	return RegistrationRepo{
		db:     db,
		logger: logger,
	}
}

// AddRegistration stores the registration and stages a RegistrationReceived
// event in the same transaction.
func (r RegistrationRepo) AddRegistration(ctx context.Context, registration entity.Registration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return PersistenceError{Err: fmt.Errorf("beginning transaction: %w", err)}
	}

	if err := r.add(ctx, tx, registration); err != nil {
		return PersistenceError{Err: errors.Join(err, tx.Rollback())}
	}

	if err := tx.Commit(); err != nil {
		return PersistenceError{Err: fmt.Errorf("committing transaction: %w", err)}
	}

	return nil
}

func (r RegistrationRepo) add(ctx context.Context, tx *sql.Tx, registration entity.Registration) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO workshop_registrations
		(id, workshop_id, name, email, phone, age, governorate, program_title, group_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		uuid.NewString(), registration.WorkshopID, registration.Name, registration.Email,
		registration.Phone, registration.Age, registration.Governorate,
		registration.ProgramTitle, registration.GroupLink)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}

	e := event.NewRegistrationReceived(uuid.NewString(), registration)
	if err := message.PublishInTx(ctx, e, tx, r.logger); err != nil {
		return fmt.Errorf("publishing event in transaction: %w", err)
	}

	return nil
}

func (r RegistrationRepo) List(ctx context.Context, workshopID string) ([]entity.Registration, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT workshop_id, name, email, phone,
		age, governorate, program_title, group_link
		FROM workshop_registrations WHERE workshop_id = $1 ORDER BY created_at`, workshopID)
	if err != nil {
		return nil, fmt.Errorf("querying registrations: %w", err)
	}
	defer rows.Close()

	var registrations []entity.Registration
	for rows.Next() {
		var r entity.Registration
		if err := rows.StructScan(&r); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		registrations = append(registrations, r)
	}

	return registrations, nil
}
