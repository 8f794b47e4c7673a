package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hearthside/leaseiq/internal/domain"
)

// TenantRepository implements domain.TenantRepository using SQLite.
type TenantRepository struct {
	store *Store
}

func (r *TenantRepository) Upsert(ctx context.Context, t domain.Tenant) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, email, phone_number, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name,
		     email = excluded.email, phone_number = excluded.phone_number`,
		t.ID, t.Name, t.Email, t.PhoneNumber, formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting tenant: %w", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	var t domain.Tenant
	var createdAt string

	err := r.store.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number, created_at FROM tenants WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Email, &t.PhoneNumber, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tenant{}, domain.ErrTenantNotFound
		}
		return domain.Tenant{}, fmt.Errorf("scanning tenant: %w", err)
	}

	t.CreatedAt = parseTime(createdAt)

	return t, nil
}
