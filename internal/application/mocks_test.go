package application

import (
	"context"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
)

type mockUserRepo struct {
	CreateFn       func(ctx context.Context, u *entity.User) error
	GetByIDFn      func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*entity.User, error)
	ListFn         func(ctx context.Context, page, limit int) ([]entity.User, int64, error)
	UpdateProfFn   func(ctx context.Context, u *entity.User) error
	UpdateStatusFn func(ctx context.Context, id string, status entity.UserStatus) error
	UpdateRoleFn   func(ctx context.Context, id string, role entity.Role) error
	SearchDonorsFn func(ctx context.Context, f repository.DonorFilter) ([]entity.User, error)
	CountByRoleFn  func(ctx context.Context, role entity.Role) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error { return m.CreateFn(ctx, u) }
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.GetByEmailFn(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]entity.User, int64, error) {
	return m.ListFn(ctx, page, limit)
}
func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	return m.UpdateProfFn(ctx, u)
}
func (m *mockUserRepo) UpdateStatus(ctx context.Context, id string, status entity.UserStatus) error {
	return m.UpdateStatusFn(ctx, id, status)
}
func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	return m.UpdateRoleFn(ctx, id, role)
}
func (m *mockUserRepo) SearchDonors(ctx context.Context, f repository.DonorFilter) ([]entity.User, error) {
	return m.SearchDonorsFn(ctx, f)
}
func (m *mockUserRepo) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	return m.CountByRoleFn(ctx, role)
}

// directory returns a user repo backed by a fixed set of users keyed by email.
func directory(users ...*entity.User) *mockUserRepo {
	byEmail := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return &mockUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*entity.User, error) {
			u, ok := byEmail[email]
			if !ok {
				return nil, repository.ErrNotFound
			}
			return u, nil
		},
	}
}

type mockRequestRepo struct {
	CreateFn         func(ctx context.Context, r *entity.DonationRequest) error
	GetByIDFn        func(ctx context.Context, id string) (*entity.DonationRequest, error)
	ListFn           func(ctx context.Context, f repository.RequestFilter, page, limit int) ([]entity.DonationRequest, int64, error)
	RecentFn         func(ctx context.Context, requesterEmail string, n int) ([]entity.DonationRequest, error)
	UpdateFn         func(ctx context.Context, r *entity.DonationRequest) error
	UpdateStatusIfFn func(ctx context.Context, id string, next, expected entity.RequestStatus) (bool, error)
	ClaimFn          func(ctx context.Context, id, donorName, donorEmail string) (bool, error)
	DeleteFn         func(ctx context.Context, id string) error
	CountAllFn       func(ctx context.Context) (int64, error)
	CountByStatusFn  func(ctx context.Context, status entity.RequestStatus) (int64, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, r *entity.DonationRequest) error {
	return m.CreateFn(ctx, r)
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockRequestRepo) List(ctx context.Context, f repository.RequestFilter, page, limit int) ([]entity.DonationRequest, int64, error) {
	return m.ListFn(ctx, f, page, limit)
}
func (m *mockRequestRepo) Recent(ctx context.Context, requesterEmail string, n int) ([]entity.DonationRequest, error) {
	return m.RecentFn(ctx, requesterEmail, n)
}
func (m *mockRequestRepo) Update(ctx context.Context, r *entity.DonationRequest) error {
	return m.UpdateFn(ctx, r)
}
func (m *mockRequestRepo) UpdateStatusIf(ctx context.Context, id string, next, expected entity.RequestStatus) (bool, error) {
	return m.UpdateStatusIfFn(ctx, id, next, expected)
}
func (m *mockRequestRepo) Claim(ctx context.Context, id, donorName, donorEmail string) (bool, error) {
	return m.ClaimFn(ctx, id, donorName, donorEmail)
}
func (m *mockRequestRepo) Delete(ctx context.Context, id string) error { return m.DeleteFn(ctx, id) }
func (m *mockRequestRepo) CountAll(ctx context.Context) (int64, error) { return m.CountAllFn(ctx) }
func (m *mockRequestRepo) CountByStatus(ctx context.Context, status entity.RequestStatus) (int64, error) {
	return m.CountByStatusFn(ctx, status)
}

type mockBlogRepo struct {
	CreateFn       func(ctx context.Context, b *entity.Blog) error
	GetByIDFn      func(ctx context.Context, id string) (*entity.Blog, error)
	ListFn         func(ctx context.Context, status entity.BlogStatus) ([]entity.Blog, error)
	UpdateStatusFn func(ctx context.Context, id string, status entity.BlogStatus) error
	DeleteFn       func(ctx context.Context, id string) error
}

func (m *mockBlogRepo) Create(ctx context.Context, b *entity.Blog) error { return m.CreateFn(ctx, b) }
func (m *mockBlogRepo) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	return m.GetByIDFn(ctx, id)
}
func (m *mockBlogRepo) List(ctx context.Context, status entity.BlogStatus) ([]entity.Blog, error) {
	return m.ListFn(ctx, status)
}
func (m *mockBlogRepo) UpdateStatus(ctx context.Context, id string, status entity.BlogStatus) error {
	return m.UpdateStatusFn(ctx, id, status)
}
func (m *mockBlogRepo) Delete(ctx context.Context, id string) error { return m.DeleteFn(ctx, id) }
