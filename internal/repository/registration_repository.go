package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simoncdt/vericoupon/internal/model"
)

// PoolInterface defines the database operations needed by the repository.
// This allows for easier testing with mocks.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RegistrationRepository provides data access for registrations using pgx.
type RegistrationRepository struct {
	pool PoolInterface
}

// NewRegistrationRepository creates a new RegistrationRepository with the given pool.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// NewRegistrationRepositoryWithPool creates a new RegistrationRepository with a
// custom pool interface. This is primarily used for testing.
func NewRegistrationRepositoryWithPool(pool PoolInterface) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Insert persists a new registration. The store assigns the ID and the
// creation timestamp; both are written back onto reg before the insert so
// the caller gets the persisted values.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *model.Registration) error {
	encoded, err := model.EncodeCoupons(reg.Coupons)
	if err != nil {
		return fmt.Errorf("encode coupons: %w", err)
	}

	reg.ID = uuid.NewString()
	reg.CreatedAt = time.Now().UTC()

	_, err = r.pool.Exec(ctx,
		`INSERT INTO registrations (id, surname, given_name, provider_name, coupons, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		reg.ID, reg.Surname, reg.GivenName, reg.ProviderName, encoded, reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// FindAll retrieves every registration, newest first.
// On success, returns an empty slice (not nil) when no registrations exist.
func (r *RegistrationRepository) FindAll(ctx context.Context) ([]model.Registration, error) {
	query := `SELECT id, surname, given_name, provider_name, coupons, created_at
		  FROM registrations ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	regs := []model.Registration{}
	for rows.Next() {
		var reg model.Registration
		var encoded []byte
		if err := rows.Scan(&reg.ID, &reg.Surname, &reg.GivenName, &reg.ProviderName, &encoded, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		coupons, err := model.DecodeCoupons(encoded)
		if err != nil {
			return nil, fmt.Errorf("registration %s: %w", reg.ID, err)
		}
		reg.Coupons = coupons
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registration rows: %w", err)
	}

	return regs, nil
}
