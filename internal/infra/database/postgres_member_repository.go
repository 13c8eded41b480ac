package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fithub_backoffice/internal/domain/member"
)

var ErrMemberNotFound = fmt.Errorf("member not found")

type PostgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

const memberColumns = `id, name, email, phone, membership_type, status, join_date, membership_expiry, photo, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*member.Member, error) {
	m := &member.Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.MembershipType, &m.Status,
		&m.JoinDate, &m.MembershipExpiry, &m.Photo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresMemberRepository) Create(ctx context.Context, m *member.Member) error {
	query := `INSERT INTO members (name, email, phone, membership_type, status, join_date, membership_expiry, photo)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Email, m.Phone, m.MembershipType, m.Status, m.JoinDate, m.MembershipExpiry, m.Photo,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating member: %w", err)
	}
	return nil
}

func (r *PostgresMemberRepository) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("error getting member by ID: %w", err)
	}
	return m, nil
}

func (r *PostgresMemberRepository) Update(ctx context.Context, m *member.Member) error {
	query := `UPDATE members
               SET name = $1, email = $2, phone = $3, membership_type = $4, status = $5,
                   membership_expiry = $6, photo = $7, updated_at = NOW()
               WHERE id = $8
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Email, m.Phone, m.MembershipType, m.Status, m.MembershipExpiry, m.Photo, m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrMemberNotFound
		}
		return fmt.Errorf("error updating member: %w", err)
	}
	return nil
}

func (r *PostgresMemberRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted member: %w", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *PostgresMemberRepository) List(ctx context.Context, params member.ListParams) ([]*member.Member, int, error) {
	page, size := normalizePage(params.Page, params.Size)
	search := "%" + params.Search + "%"

	var total int
	countQuery := `SELECT COUNT(*) FROM members
                    WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting members: %w", err)
	}

	query := `SELECT ` + memberColumns + ` FROM members
               WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1)
               ORDER BY id
               LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, search, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing members: %w", err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating members: %w", err)
	}
	return members, total, nil
}

func (r *PostgresMemberRepository) ListExpiringBetween(ctx context.Context, start, end time.Time) ([]*member.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
               WHERE membership_expiry BETWEEN $1 AND $2
               ORDER BY membership_expiry, id`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring members: %w", err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning expiring member: %w", err)
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring members: %w", err)
	}
	return members, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
