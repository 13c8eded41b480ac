package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fithub_backoffice/internal/domain/payment"
)

var ErrPaymentNotFound = fmt.Errorf("payment not found")

type PostgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// Every read joins members so the payment carries the owner's contact
// snapshot; reminder rendering depends on it.
const paymentSelect = `SELECT p.id, p.member_id, p.amount, p.due_date, p.payment_date, p.status, p.type,
                              p.description, p.created_at, p.updated_at, m.name, m.email, m.phone
                       FROM payments p
                       JOIN members m ON m.id = p.member_id`

func scanPayment(row interface{ Scan(...any) error }) (*payment.Payment, error) {
	p := &payment.Payment{}
	err := row.Scan(&p.ID, &p.MemberID, &p.Amount, &p.DueDate, &p.PaymentDate, &p.Status, &p.Type,
		&p.Description, &p.CreatedAt, &p.UpdatedAt, &p.MemberName, &p.MemberEmail, &p.MemberPhone)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `INSERT INTO payments (member_id, amount, due_date, payment_date, status, type, description)
               VALUES ($1, $2, $3, $4, $5, $6, $7)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.MemberID, p.Amount, p.DueDate, p.PaymentDate, p.Status, p.Type, p.Description,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, paymentSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	query := `UPDATE payments
               SET amount = $1, due_date = $2, payment_date = $3, status = $4, type = $5,
                   description = $6, updated_at = NOW()
               WHERE id = $7
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Amount, p.DueDate, p.PaymentDate, p.Status, p.Type, p.Description, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("error updating payment: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted payment: %w", err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PostgresPaymentRepository) List(ctx context.Context, params payment.ListParams) ([]*payment.Payment, int, error) {
	page, size := normalizePage(params.Page, params.Size)
	search := "%" + params.Search + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM payments p JOIN members m ON m.id = p.member_id
                    WHERE ($1 = '%%' OR m.name ILIKE $1 OR p.description ILIKE $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting payments: %w", err)
	}

	query := paymentSelect + `
               WHERE ($1 = '%%' OR m.name ILIKE $1 OR p.description ILIKE $1)
               ORDER BY p.id
               LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, query, total, search, size, (page-1)*size)
}

func (r *PostgresPaymentRepository) ListByMember(ctx context.Context, memberID int64, params payment.ListParams) ([]*payment.Payment, int, error) {
	page, size := normalizePage(params.Page, params.Size)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE member_id = $1`, memberID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting member payments: %w", err)
	}

	query := paymentSelect + ` WHERE p.member_id = $1 ORDER BY p.due_date DESC, p.id LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, query, total, memberID, size, (page-1)*size)
}

func (r *PostgresPaymentRepository) queryPage(ctx context.Context, query string, total int, args ...any) ([]*payment.Payment, int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, total, nil
}

func (r *PostgresPaymentRepository) ListPendingDueBetween(ctx context.Context, start, end time.Time) ([]*payment.Payment, error) {
	query := paymentSelect + `
               WHERE p.status = $1 AND p.due_date BETWEEN $2 AND $3
               ORDER BY p.due_date, p.id`

	rows, err := r.db.QueryContext(ctx, query, payment.StatusPending, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing pending payments: %w", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pending payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending payments: %w", err)
	}
	return payments, nil
}
