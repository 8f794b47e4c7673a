package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hearthside/leaseiq/internal/domain"
)

// ApplicationRepository implements domain.ApplicationRepository using SQLite.
// Approve runs the lease-issuance transaction.
type ApplicationRepository struct {
	store *Store
}

const applicationColumns = `a.id, a.property_id, a.tenant_id, a.status, a.application_date,
	a.name, a.email, a.phone_number, a.lease_id,
	a.current_address, a.years_at_address, a.reason_for_moving,
	a.employer_name, a.years_employed, a.monthly_income, a.occupants,
	a.has_pets, a.has_bankruptcy, a.has_eviction, a.has_refused_rent, a.has_felony,
	a.created_at, a.updated_at`

const detailJoin = ` FROM applications a
	JOIN properties p ON p.id = a.property_id
	JOIN tenants t ON t.id = a.tenant_id`

func (r *ApplicationRepository) Create(ctx context.Context, a domain.Application) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO applications (id, property_id, tenant_id, status, application_date,
		 name, email, phone_number, lease_id,
		 current_address, years_at_address, reason_for_moving,
		 employer_name, years_employed, monthly_income, occupants,
		 has_pets, has_bankruptcy, has_eviction, has_refused_rent, has_felony,
		 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PropertyID, a.TenantID, string(a.Status), formatTime(a.ApplicationDate),
		a.Name, a.Email, a.PhoneNumber, a.LeaseID,
		a.Profile.CurrentAddress, a.Profile.YearsAtAddress, a.Profile.ReasonForMoving,
		a.Profile.EmployerName, a.Profile.YearsEmployed, a.Profile.MonthlyIncome, a.Profile.Occupants,
		a.Profile.HasPets, a.Profile.HasBankruptcy, a.Profile.HasEviction,
		a.Profile.HasRefusedRent, a.Profile.HasFelony,
		formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		// The partial unique index on (tenant_id, property_id) over the
		// Pending/Approved class backstops the duplicate guard under
		// concurrent double-submission.
		if isUniqueViolation(err) {
			return &domain.DuplicateApplicationError{
				TenantID:   a.TenantID,
				PropertyID: a.PropertyID,
				Status:     domain.StatusPending,
			}
		}
		return fmt.Errorf("inserting application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (domain.Application, error) {
	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = ?`, id)

	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Application{}, domain.ErrApplicationNotFound
		}
		return domain.Application{}, fmt.Errorf("scanning application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) GetDetail(ctx context.Context, id string) (domain.ApplicationDetail, error) {
	row := r.store.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+`,
		 p.name, p.address, p.city, p.state, p.postal_code, p.latitude, p.longitude,
		 p.price_per_month, p.security_deposit, p.manager_id, p.created_at, p.updated_at,
		 t.name, t.email, t.phone_number, t.created_at,
		 l.id, l.start_date, l.end_date, l.rent, l.deposit, l.created_at`+
			detailJoin+`
		 LEFT JOIN leases l ON l.id = a.lease_id
		 WHERE a.id = ?`, id)

	detail, err := scanDetail(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ApplicationDetail{}, domain.ErrApplicationNotFound
		}
		return domain.ApplicationDetail{}, fmt.Errorf("scanning application detail: %w", err)
	}
	return detail, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	query := `SELECT ` + applicationColumns + `,
		 p.name, p.address, p.city, p.state, p.postal_code, p.latitude, p.longitude,
		 p.price_per_month, p.security_deposit, p.manager_id, p.created_at, p.updated_at,
		 t.name, t.email, t.phone_number, t.created_at` + detailJoin
	var args []any

	switch {
	case filter.TenantID != "":
		query += ` WHERE a.tenant_id = ?`
		args = append(args, filter.TenantID)
	case filter.ManagerID != "":
		query += ` WHERE p.manager_id = ?`
		args = append(args, filter.ManagerID)
	}

	query += ` ORDER BY a.application_date DESC`

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	var details []domain.ApplicationDetail
	for rows.Next() {
		detail, err := scanDetail(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scanning application view: %w", err)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

func (r *ApplicationRepository) FindActive(ctx context.Context, tenantID, propertyID string) ([]domain.Application, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications a
		 WHERE a.tenant_id = ? AND a.property_id = ? AND a.status IN (?, ?)`,
		tenantID, propertyID, string(domain.StatusPending), string(domain.StatusApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("querying active applications: %w", err)
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning active application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	result, err := r.store.db.ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(time.Now()), id,
	)
	if err != nil {
		// Re-opening a denied application trips the active-pair index when
		// the tenant has since submitted a fresh application.
		if isUniqueViolation(err) {
			a, getErr := r.GetByID(ctx, id)
			if getErr != nil {
				return getErr
			}
			return &domain.DuplicateApplicationError{
				TenantID:   a.TenantID,
				PropertyID: a.PropertyID,
				Status:     domain.StatusPending,
			}
		}
		return fmt.Errorf("updating application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrApplicationNotFound
	}

	return nil
}

// Approve atomically creates the lease, links the tenant to the property,
// marks the application approved, and denies every other pending application
// on the same property. Any failure rolls the whole block back, leaving
// status, lease and membership exactly as before.
func (r *ApplicationRepository) Approve(ctx context.Context, a domain.Application, lease domain.Lease) error {
	return r.store.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// A racing approval may have committed a lease after the caller's
		// pre-check; re-check inside the transaction so the loser fails
		// instead of issuing a duplicate.
		var existingID, existingEnd string
		err := tx.QueryRowContext(ctx,
			`SELECT id, end_date FROM leases
			 WHERE tenant_id = ? AND property_id = ? AND end_date >= ?
			 LIMIT 1`,
			a.TenantID, a.PropertyID, formatTime(lease.StartDate),
		).Scan(&existingID, &existingEnd)
		switch {
		case err == nil:
			return &domain.ActiveLeaseError{
				TenantID:   a.TenantID,
				PropertyID: a.PropertyID,
				EndDate:    parseTime(existingEnd),
			}
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("checking active lease: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leases (id, start_date, end_date, rent, deposit, property_id, tenant_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			lease.ID, formatTime(lease.StartDate), formatTime(lease.EndDate),
			lease.Rent, lease.Deposit, lease.PropertyID, lease.TenantID,
			formatTime(lease.CreatedAt),
		); err != nil {
			return fmt.Errorf("inserting lease: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO property_tenants (property_id, tenant_id) VALUES (?, ?)
			 ON CONFLICT (property_id, tenant_id) DO NOTHING`,
			a.PropertyID, a.TenantID,
		); err != nil {
			return fmt.Errorf("linking tenant to property: %w", err)
		}

		// Competing pending applications lose. Approved or denied siblings
		// are untouched. Denying first also frees the active-pair slot when
		// the approved application is a previously denied one and the same
		// tenant has since resubmitted.
		now := formatTime(time.Now())
		if _, err := tx.ExecContext(ctx,
			`UPDATE applications SET status = ?, updated_at = ?
			 WHERE property_id = ? AND id <> ? AND status = ?`,
			string(domain.StatusDenied), now, a.PropertyID, a.ID, string(domain.StatusPending),
		); err != nil {
			return fmt.Errorf("denying competing applications: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE applications SET status = ?, lease_id = ?, updated_at = ? WHERE id = ?`,
			string(domain.StatusApproved), lease.ID, now, a.ID,
		); err != nil {
			return fmt.Errorf("approving application: %w", err)
		}

		return nil
	})
}

func (r *ApplicationRepository) ActiveLease(ctx context.Context, tenantID, propertyID string, now time.Time) (domain.Lease, error) {
	return r.leaseQuery(ctx,
		`SELECT id, start_date, end_date, rent, deposit, property_id, tenant_id, created_at
		 FROM leases WHERE tenant_id = ? AND property_id = ? AND end_date >= ?
		 LIMIT 1`,
		tenantID, propertyID, formatTime(now))
}

func (r *ApplicationRepository) LatestLease(ctx context.Context, tenantID, propertyID string) (domain.Lease, error) {
	return r.leaseQuery(ctx,
		`SELECT id, start_date, end_date, rent, deposit, property_id, tenant_id, created_at
		 FROM leases WHERE tenant_id = ? AND property_id = ?
		 ORDER BY start_date DESC LIMIT 1`,
		tenantID, propertyID)
}

func (r *ApplicationRepository) leaseQuery(ctx context.Context, query string, args ...any) (domain.Lease, error) {
	var l domain.Lease
	var start, end, created string

	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(
		&l.ID, &start, &end, &l.Rent, &l.Deposit, &l.PropertyID, &l.TenantID, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lease{}, domain.ErrLeaseNotFound
		}
		return domain.Lease{}, fmt.Errorf("scanning lease: %w", err)
	}

	l.StartDate = parseTime(start)
	l.EndDate = parseTime(end)
	l.CreatedAt = parseTime(created)

	return l, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(rs rowScanner) (domain.Application, error) {
	var a domain.Application
	var status, applicationDate, createdAt, updatedAt string
	var leaseID, currentAddress, reasonForMoving, employerName sql.NullString
	var yearsAtAddress, yearsEmployed, monthlyIncome sql.NullFloat64
	var occupants sql.NullInt64

	err := rs.Scan(&a.ID, &a.PropertyID, &a.TenantID, &status, &applicationDate,
		&a.Name, &a.Email, &a.PhoneNumber, &leaseID,
		&currentAddress, &yearsAtAddress, &reasonForMoving,
		&employerName, &yearsEmployed, &monthlyIncome, &occupants,
		&a.Profile.HasPets, &a.Profile.HasBankruptcy, &a.Profile.HasEviction,
		&a.Profile.HasRefusedRent, &a.Profile.HasFelony,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Application{}, err
	}

	a.Status = domain.Status(status)
	a.ApplicationDate = parseTime(applicationDate)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	a.LeaseID = nullStr(leaseID)
	a.Profile.CurrentAddress = nullStr(currentAddress)
	a.Profile.YearsAtAddress = nullFloat(yearsAtAddress)
	a.Profile.ReasonForMoving = nullStr(reasonForMoving)
	a.Profile.EmployerName = nullStr(employerName)
	a.Profile.YearsEmployed = nullFloat(yearsEmployed)
	a.Profile.MonthlyIncome = nullFloat(monthlyIncome)
	a.Profile.Occupants = nullInt(occupants)

	return a, nil
}

func scanDetail(rs rowScanner, withLease bool) (domain.ApplicationDetail, error) {
	var d domain.ApplicationDetail
	var status, applicationDate, createdAt, updatedAt string
	var leaseID, currentAddress, reasonForMoving, employerName sql.NullString
	var yearsAtAddress, yearsEmployed, monthlyIncome sql.NullFloat64
	var occupants sql.NullInt64
	var pCreatedAt, pUpdatedAt, tCreatedAt string
	var lID, lStart, lEnd, lCreated sql.NullString
	var lRent, lDeposit sql.NullFloat64

	dest := []any{
		&d.ID, &d.PropertyID, &d.TenantID, &status, &applicationDate,
		&d.Name, &d.Email, &d.PhoneNumber, &leaseID,
		&currentAddress, &yearsAtAddress, &reasonForMoving,
		&employerName, &yearsEmployed, &monthlyIncome, &occupants,
		&d.Profile.HasPets, &d.Profile.HasBankruptcy, &d.Profile.HasEviction,
		&d.Profile.HasRefusedRent, &d.Profile.HasFelony,
		&createdAt, &updatedAt,
		&d.Property.Name, &d.Property.Location.Address, &d.Property.Location.City,
		&d.Property.Location.State, &d.Property.Location.PostalCode,
		&d.Property.Location.Latitude, &d.Property.Location.Longitude,
		&d.Property.PricePerMonth, &d.Property.SecurityDeposit,
		&d.Property.ManagerID, &pCreatedAt, &pUpdatedAt,
		&d.Tenant.Name, &d.Tenant.Email, &d.Tenant.PhoneNumber, &tCreatedAt,
	}
	if withLease {
		dest = append(dest, &lID, &lStart, &lEnd, &lRent, &lDeposit, &lCreated)
	}

	if err := rs.Scan(dest...); err != nil {
		return domain.ApplicationDetail{}, err
	}

	d.Status = domain.Status(status)
	d.ApplicationDate = parseTime(applicationDate)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	d.LeaseID = nullStr(leaseID)
	d.Profile.CurrentAddress = nullStr(currentAddress)
	d.Profile.YearsAtAddress = nullFloat(yearsAtAddress)
	d.Profile.ReasonForMoving = nullStr(reasonForMoving)
	d.Profile.EmployerName = nullStr(employerName)
	d.Profile.YearsEmployed = nullFloat(yearsEmployed)
	d.Profile.MonthlyIncome = nullFloat(monthlyIncome)
	d.Profile.Occupants = nullInt(occupants)

	d.Property.ID = d.PropertyID
	d.Property.CreatedAt = parseTime(pCreatedAt)
	d.Property.UpdatedAt = parseTime(pUpdatedAt)

	d.Tenant.ID = d.TenantID
	d.Tenant.CreatedAt = parseTime(tCreatedAt)

	if withLease && lID.Valid {
		d.Lease = &domain.Lease{
			ID:         lID.String,
			StartDate:  parseTime(lStart.String),
			EndDate:    parseTime(lEnd.String),
			Rent:       lRent.Float64,
			Deposit:    lDeposit.Float64,
			PropertyID: d.PropertyID,
			TenantID:   d.TenantID,
			CreatedAt:  parseTime(lCreated.String),
		}
	}

	return d, nil
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
