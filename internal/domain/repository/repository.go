// Package repository defines the narrow storage contracts the application
// layer depends on. Implementations live under infrastructure and must not
// leak their storage engine through these interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// DonorFilter narrows the public donor directory search. Empty fields are
// ignored; the directory only ever returns active donors.
type DonorFilter struct {
	BloodGroup string
	District   string
	Upazila    string
}

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, page, limit int) ([]entity.User, int64, error)
	UpdateProfile(ctx context.Context, u *entity.User) error
	UpdateStatus(ctx context.Context, id string, status entity.UserStatus) error
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	SearchDonors(ctx context.Context, f DonorFilter) ([]entity.User, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}

// RequestFilter narrows donation request listings. An empty Status means
// all states; RequesterEmail scopes to one creator.
type RequestFilter struct {
	Status         entity.RequestStatus
	RequesterEmail string
}

type DonationRequestRepository interface {
	Create(ctx context.Context, r *entity.DonationRequest) error
	GetByID(ctx context.Context, id string) (*entity.DonationRequest, error)
	List(ctx context.Context, f RequestFilter, page, limit int) ([]entity.DonationRequest, int64, error)
	Recent(ctx context.Context, requesterEmail string, n int) ([]entity.DonationRequest, error)

	// Update persists the mutable request fields only. Status, requester
	// identity, and donor identity are never written by this method.
	Update(ctx context.Context, r *entity.DonationRequest) error

	// UpdateStatusIf transitions the status only when the stored value
	// still equals expected, reporting whether the write happened.
	UpdateStatusIf(ctx context.Context, id string, next, expected entity.RequestStatus) (bool, error)

	// Claim atomically records the donor and moves a still-pending request
	// to inprogress, reporting whether the claim won.
	Claim(ctx context.Context, id, donorName, donorEmail string) (bool, error)

	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.RequestStatus) (int64, error)
}

type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context, status entity.BlogStatus) ([]entity.Blog, error)
	UpdateStatus(ctx context.Context, id string, status entity.BlogStatus) error
	Delete(ctx context.Context, id string) error
}
