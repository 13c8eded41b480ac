package app

import (
	"context"
	"fmt"

	"fithub_backoffice/internal/domain/payment"
)

// PaymentService is the CRUD pass-through over the payment store.
type PaymentService struct {
	repo    payment.Repository
	members MemberGetter
}

func NewPaymentService(repo payment.Repository, members MemberGetter) *PaymentService {
	return &PaymentService{repo: repo, members: members}
}

func (s *PaymentService) List(ctx context.Context, params payment.ListParams) ([]*payment.Payment, int, error) {
	return s.repo.List(ctx, params)
}

func (s *PaymentService) ListByMember(ctx context.Context, memberID int64, params payment.ListParams) ([]*payment.Payment, int, error) {
	return s.repo.ListByMember(ctx, memberID, params)
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*payment.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// Create verifies the owning member exists before inserting the payment. The
// insert cannot fill the joined member snapshot fields, so the stored record
// is read back and returned.
func (s *PaymentService) Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	if _, err := s.members.GetByID(ctx, p.MemberID); err != nil {
		return nil, fmt.Errorf("payment member %d: %w", p.MemberID, err)
	}
	if p.Status == "" {
		p.Status = payment.StatusPending
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

func (s *PaymentService) Update(ctx context.Context, id int64, in *payment.Payment) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Amount = in.Amount
	p.DueDate = in.DueDate
	p.Status = in.Status
	p.Type = in.Type
	p.Description = in.Description
	if in.PaymentDate.Valid {
		p.PaymentDate = in.PaymentDate
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
