package app

import (
	"context"

	"fithub_backoffice/internal/domain/member"
)

// MemberService is the CRUD pass-through over the member store.
type MemberService struct {
	repo member.Repository
}

func NewMemberService(repo member.Repository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) List(ctx context.Context, params member.ListParams) ([]*member.Member, int, error) {
	return s.repo.List(ctx, params)
}

func (s *MemberService) Get(ctx context.Context, id int64) (*member.Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MemberService) Create(ctx context.Context, m *member.Member) error {
	if m.Status == "" {
		m.Status = member.StatusActive
	}
	return s.repo.Create(ctx, m)
}

// Update copies the mutable fields onto the stored record so the join date
// never changes after creation.
func (s *MemberService) Update(ctx context.Context, id int64, in *member.Member) (*member.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = in.Name
	m.Email = in.Email
	m.Phone = in.Phone
	m.MembershipType = in.MembershipType
	m.Status = in.Status
	m.MembershipExpiry = in.MembershipExpiry
	m.Photo = in.Photo
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
