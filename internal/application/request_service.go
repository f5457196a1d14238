package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/policy"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/apperr"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/events"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/helpers"
)

const recentLimit = 3

// RequestService owns the donation request lifecycle. Every operation
// resolves actor and resource state freshly, asks the policy layer for a
// decision, and performs a single logical write. Status writes are
// conditional on the previously read value so concurrent transitions and
// commitments cannot silently overwrite each other.
type RequestService struct {
	Repo     repository.DonationRequestRepository
	Users    repository.UserRepository
	Redis    *redis.Client
	Events   *events.Publisher
	Logger   *logrus.Logger
	StatsTTL time.Duration
}

func NewRequestService(repo repository.DonationRequestRepository, users repository.UserRepository, rdb *redis.Client, pub *events.Publisher, logger *logrus.Logger, statsTTL time.Duration) *RequestService {
	return &RequestService{Repo: repo, Users: users, Redis: rdb, Events: pub, Logger: logger, StatsTTL: statsTTL}
}

func (s *RequestService) actor(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	return u, nil
}

// RequestInput carries the caller-editable fields of a donation request.
// Status and requester/donor identity are deliberately not part of it; the
// general update path cannot touch them no matter what the caller sends.
type RequestInput struct {
	RecipientName     string
	RecipientDistrict string
	RecipientUpazila  string
	HospitalName      string
	FullAddress       string
	BloodGroup        string
	DonationDate      string
	DonationTime      string
	RequestMessage    string
}

func (in RequestInput) apply(dr *entity.DonationRequest) {
	dr.RecipientName = in.RecipientName
	dr.RecipientDistrict = in.RecipientDistrict
	dr.RecipientUpazila = in.RecipientUpazila
	dr.HospitalName = in.HospitalName
	dr.FullAddress = in.FullAddress
	dr.BloodGroup = in.BloodGroup
	dr.DonationDate = in.DonationDate
	dr.DonationTime = in.DonationTime
	dr.RequestMessage = in.RequestMessage
}

// Create opens a new pending request with a snapshot of the creator's
// identity. Blocked accounts are denied regardless of role.
func (s *RequestService) Create(ctx context.Context, actorEmail string, in RequestInput) (*entity.DonationRequest, error) {
	u, err := s.actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreateRequest(u).Err(); err != nil {
		return nil, err
	}

	dr := &entity.DonationRequest{
		RequesterName:  u.Name,
		RequesterEmail: u.Email,
		Status:         entity.RequestPending,
	}
	in.apply(dr)
	if err := s.Repo.Create(ctx, dr); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Type: events.RequestCreated, RequestID: dr.ID, ActorEmail: u.Email, Status: string(dr.Status)})
	return dr, nil
}

// Recent returns the actor's newest requests, capped at three.
func (s *RequestService) Recent(ctx context.Context, actorEmail string) ([]entity.DonationRequest, error) {
	return s.Repo.Recent(ctx, actorEmail, recentLimit)
}

// Mine lists the actor's own requests, optionally filtered by status.
func (s *RequestService) Mine(ctx context.Context, actorEmail string, status entity.RequestStatus, page, limit int) ([]entity.DonationRequest, int64, error) {
	return s.Repo.List(ctx, repository.RequestFilter{RequesterEmail: actorEmail, Status: status}, page, limit)
}

// ListAll is the elevated listing across all requesters. The role gate is
// enforced at the route layer.
func (s *RequestService) ListAll(ctx context.Context, status entity.RequestStatus, page, limit int) ([]entity.DonationRequest, int64, error) {
	return s.Repo.List(ctx, repository.RequestFilter{Status: status}, page, limit)
}

// Public lists pending requests only; no other status is ever exposed to
// anonymous callers.
func (s *RequestService) Public(ctx context.Context, page, limit int) ([]entity.DonationRequest, int64, error) {
	return s.Repo.List(ctx, repository.RequestFilter{Status: entity.RequestPending}, page, limit)
}

func (s *RequestService) Get(ctx context.Context, id string) (*entity.DonationRequest, error) {
	dr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "request not found")
	}
	return dr, nil
}

// Update replaces the editable fields of a request. Only the original
// requester or an admin may do so; status and identity survive unchanged.
func (s *RequestService) Update(ctx context.Context, actorEmail, id string, in RequestInput) (*entity.DonationRequest, error) {
	dr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateRequest(u, dr.RequesterEmail).Err(); err != nil {
		return nil, err
	}
	in.apply(dr)
	if err := s.Repo.Update(ctx, dr); err != nil {
		return nil, asNotFound(err, "request not found")
	}
	return dr, nil
}

// Transition moves a request to any of the four lifecycle states. The
// guard is authorization plus value-set membership, not graph adjacency.
// The write is conditional on the status read in this call; losing that
// race surfaces as a conflict.
func (s *RequestService) Transition(ctx context.Context, actorEmail, id string, next entity.RequestStatus) error {
	if !next.Valid() {
		return apperr.New(apperr.Validation, "invalid status value")
	}
	dr, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	u, err := s.actor(ctx, actorEmail)
	if err != nil {
		return err
	}
	if err := policy.CanTransitionRequest(u, dr.RequesterEmail).Err(); err != nil {
		return err
	}
	ok, err := s.Repo.UpdateStatusIf(ctx, id, next, dr.Status)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.Conflict, "request status changed concurrently, please retry")
	}
	s.publish(ctx, events.Event{Type: events.RequestStatusChanged, RequestID: id, ActorEmail: u.Email, Status: string(next)})
	return nil
}

// Donate commits the actor as the donor of a pending request. Donor
// identity comes from the verified actor, never from the payload, and the
// claim is a single compare-and-swap: of two concurrent donors exactly one
// wins, the other sees a conflict.
func (s *RequestService) Donate(ctx context.Context, actorEmail, id string) (*entity.DonationRequest, error) {
	dr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.actor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCommitDonation(u.Email, dr).Err(); err != nil {
		return nil, err
	}
	ok, err := s.Repo.Claim(ctx, id, u.Name, u.Email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.Conflict, "this request is no longer available for donation")
	}
	dr.DonorName = u.Name
	dr.DonorEmail = u.Email
	dr.Status = entity.RequestInProgress
	s.publish(ctx, events.Event{Type: events.RequestClaimed, RequestID: id, ActorEmail: u.Email, Status: string(entity.RequestInProgress)})
	return dr, nil
}

// Delete removes a request; allowed for the original requester or an admin.
func (s *RequestService) Delete(ctx context.Context, actorEmail, id string) error {
	dr, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	u, err := s.actor(ctx, actorEmail)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteRequest(u, dr.RequesterEmail).Err(); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return asNotFound(err, "request not found")
	}
	s.publish(ctx, events.Event{Type: events.RequestDeleted, RequestID: id, ActorEmail: u.Email})
	return nil
}

// Stats aggregates platform counts for the admin dashboard, cached briefly
// in Redis to keep the dashboard cheap.
type Stats struct {
	TotalDonors   int64            `json:"total_donors"`
	TotalRequests int64            `json:"total_requests"`
	ByStatus      map[string]int64 `json:"requests_by_status"`
}

const statsCacheKey = "admin:stats"

func (s *RequestService) Stats(ctx context.Context) (*Stats, error) {
	if s.Redis != nil {
		cached := &Stats{}
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, statsCacheKey, cached); err == nil && ok {
			return cached, nil
		}
	}

	donors, err := s.Users.CountByRole(ctx, entity.RoleDonor)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, 4)
	for _, st := range []entity.RequestStatus{entity.RequestPending, entity.RequestInProgress, entity.RequestDone, entity.RequestCanceled} {
		n, err := s.Repo.CountByStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		byStatus[string(st)] = n
	}

	stats := &Stats{TotalDonors: donors, TotalRequests: total, ByStatus: byStatus}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, statsCacheKey, stats, s.StatsTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return stats, nil
}

// publish is best effort: a broker outage must not fail the operation.
func (s *RequestService) publish(ctx context.Context, ev events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"type": ev.Type, "request_id": ev.RequestID}).Warn("event publish failed")
	}
}
