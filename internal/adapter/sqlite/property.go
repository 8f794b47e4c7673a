package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hearthside/leaseiq/internal/domain"
)

// PropertyRepository implements domain.PropertyRepository using SQLite.
type PropertyRepository struct {
	store *Store
}

const propertyColumns = `id, name, address, city, state, postal_code, latitude, longitude,
	price_per_month, security_deposit, manager_id, created_at, updated_at`

func (r *PropertyRepository) Create(ctx context.Context, p domain.Property) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO properties (id, name, address, city, state, postal_code, latitude, longitude,
		 price_per_month, security_deposit, manager_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Location.Address, p.Location.City, p.Location.State,
		p.Location.PostalCode, p.Location.Latitude, p.Location.Longitude,
		p.PricePerMonth, p.SecurityDeposit, p.ManagerID,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	return scanProperty(r.store.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id,
	))
}

func (r *PropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any

	if filter.ManagerID != "" {
		query += ` WHERE manager_id = ?`
		args = append(args, filter.ManagerID)
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Location.Address, &p.Location.City,
			&p.Location.State, &p.Location.PostalCode, &p.Location.Latitude,
			&p.Location.Longitude, &p.PricePerMonth, &p.SecurityDeposit,
			&p.ManagerID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

func scanProperty(row *sql.Row) (domain.Property, error) {
	var p domain.Property
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &p.Location.Address, &p.Location.City,
		&p.Location.State, &p.Location.PostalCode, &p.Location.Latitude,
		&p.Location.Longitude, &p.PricePerMonth, &p.SecurityDeposit,
		&p.ManagerID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, domain.ErrPropertyNotFound
		}
		return domain.Property{}, fmt.Errorf("scanning property: %w", err)
	}

	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)

	return p, nil
}
