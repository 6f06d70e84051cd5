package repository

import (
	"context"
	"fmt"

	"rising-bms/internal/data/entity"
	"rising-bms/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	Status *entity.CustomerStatus
	Search *string // matches name, email or company
}

// CustomerStats feeds the dashboard.
type CustomerStats struct {
	Total        int64
	Aktiv        int64
	Inaktiv      int64
	Interessent  int64
	NewThisMonth int64
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context, filter CustomerFilter) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*CustomerStats, error)

	AddNote(ctx context.Context, note *entity.CustomerNote) error
	FindNotes(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerNote, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, name, email, phone, company, address, status,
	       created_at, updated_at, deleted_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Address,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, company, address,
		                      status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Company,
		customer.Address,
		customer.Status,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1 AND deleted_at IS NULL`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

// buildCustomerWhere appends filter conditions; $1.. placeholders start
// after the fixed args of the calling query.
func buildCustomerWhere(filter CustomerFilter, args []any) (string, []any) {
	where := ` WHERE deleted_at IS NULL`

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)", n, n, n)
	}

	return where, args
}

func (r *customerRepository) FindAll(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	where, args := buildCustomerWhere(filter, nil)

	query := `SELECT ` + customerColumns + ` FROM customers` + where
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("find all customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountAll(ctx context.Context, filter CustomerFilter) (int64, error) {
	where, args := buildCustomerWhere(filter, nil)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, company = $5,
		    address = $6, status = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Company,
		customer.Address,
		customer.Status,
		customer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found or already deleted", customer.ID.String())
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE customers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete customer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", id.String())
	}

	r.log.Info("Customer deleted", zap.String("id", id.String()))
	return nil
}

// Stats aggregates the customer counters shown on the dashboard.
func (r *customerRepository) Stats(ctx context.Context) (*CustomerStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'aktiv'),
		       COUNT(*) FILTER (WHERE status = 'inaktiv'),
		       COUNT(*) FILTER (WHERE status = 'interessent'),
		       COUNT(*) FILTER (WHERE created_at >= date_trunc('month', NOW()))
		FROM customers
		WHERE deleted_at IS NULL
	`

	var stats CustomerStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Aktiv,
		&stats.Inaktiv,
		&stats.Interessent,
		&stats.NewThisMonth,
	)
	if err != nil {
		r.log.Error("Failed to aggregate customer stats", zap.Error(err))
		return nil, fmt.Errorf("customer stats: %w", err)
	}

	return &stats, nil
}

func (r *customerRepository) AddNote(ctx context.Context, note *entity.CustomerNote) error {
	query := `
		INSERT INTO customer_notes (id, customer_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		note.ID,
		note.CustomerID,
		note.AuthorID,
		note.Content,
		note.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add customer note",
			zap.Error(err),
			zap.String("customer_id", note.CustomerID.String()),
		)
		return fmt.Errorf("add note for customer %s: %w", note.CustomerID.String(), err)
	}

	return nil
}

func (r *customerRepository) FindNotes(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerNote, error) {
	query := `
		SELECT id, customer_id, author_id, content, created_at
		FROM customer_notes
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to list customer notes",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find notes for customer %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var notes []*entity.CustomerNote
	for rows.Next() {
		var note entity.CustomerNote
		err := rows.Scan(&note.ID, &note.CustomerID, &note.AuthorID, &note.Content, &note.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan customer note row: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer note rows: %w", err)
	}

	return notes, nil
}
