package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
)

type DonationRequestRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRequestRepository(pool *pgxpool.Pool) *DonationRequestRepository {
	return &DonationRequestRepository{pool: pool}
}

const requestColumns = `id, recipient_name, recipient_district, recipient_upazila, hospital_name,
	full_address, blood_group, donation_date, donation_time, request_message,
	requester_name, requester_email, status, donor_name, donor_email, created_at, updated_at`

func scanRequest(row pgx.Row) (*entity.DonationRequest, error) {
	dr := &entity.DonationRequest{}
	err := row.Scan(&dr.ID, &dr.RecipientName, &dr.RecipientDistrict, &dr.RecipientUpazila,
		&dr.HospitalName, &dr.FullAddress, &dr.BloodGroup, &dr.DonationDate, &dr.DonationTime,
		&dr.RequestMessage, &dr.RequesterName, &dr.RequesterEmail, &dr.Status,
		&dr.DonorName, &dr.DonorEmail, &dr.CreatedAt, &dr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return dr, nil
}

func (r *DonationRequestRepository) Create(ctx context.Context, dr *entity.DonationRequest) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO donation_requests
			(recipient_name, recipient_district, recipient_upazila, hospital_name, full_address,
			 blood_group, donation_date, donation_time, request_message, requester_name, requester_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, dr.RecipientName, dr.RecipientDistrict, dr.RecipientUpazila, dr.HospitalName, dr.FullAddress,
		dr.BloodGroup, dr.DonationDate, dr.DonationTime, dr.RequestMessage,
		dr.RequesterName, dr.RequesterEmail, dr.Status)
	return row.Scan(&dr.ID, &dr.CreatedAt, &dr.UpdatedAt)
}

func (r *DonationRequestRepository) GetByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM donation_requests WHERE id = $1
	`, id))
}

func (r *DonationRequestRepository) List(ctx context.Context, f repository.RequestFilter, page, limit int) ([]entity.DonationRequest, int64, error) {
	where := ` WHERE status = COALESCE(NULLIF($1, ''), status)
		AND requester_email = COALESCE(NULLIF($2, ''), requester_email)`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM donation_requests`+where,
		string(f.Status), f.RequesterEmail).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM donation_requests`+where+`
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`, string(f.Status), f.RequesterEmail, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reqs, err := collectRequests(rows)
	return reqs, total, err
}

func (r *DonationRequestRepository) Recent(ctx context.Context, requesterEmail string, n int) ([]entity.DonationRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM donation_requests
		WHERE requester_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, requesterEmail, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Update writes the mutable columns only. Status and the requester/donor
// identity columns are deliberately absent from the SET list so the general
// update path can never change them.
func (r *DonationRequestRepository) Update(ctx context.Context, dr *entity.DonationRequest) error {
	dr.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE donation_requests
		SET recipient_name = $1, recipient_district = $2, recipient_upazila = $3,
		    hospital_name = $4, full_address = $5, blood_group = $6,
		    donation_date = $7, donation_time = $8, request_message = $9, updated_at = $10
		WHERE id = $11
	`, dr.RecipientName, dr.RecipientDistrict, dr.RecipientUpazila, dr.HospitalName,
		dr.FullAddress, dr.BloodGroup, dr.DonationDate, dr.DonationTime, dr.RequestMessage,
		dr.UpdatedAt, dr.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DonationRequestRepository) UpdateStatusIf(ctx context.Context, id string, next, expected entity.RequestStatus) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE donation_requests
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, next, id, expected)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *DonationRequestRepository) Claim(ctx context.Context, id, donorName, donorEmail string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE donation_requests
		SET donor_name = $1, donor_email = $2, status = $3, updated_at = now()
		WHERE id = $4 AND status = $5
	`, donorName, donorEmail, entity.RequestInProgress, id, entity.RequestPending)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *DonationRequestRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM donation_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DonationRequestRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM donation_requests`).Scan(&n)
	return n, err
}

func (r *DonationRequestRepository) CountByStatus(ctx context.Context, status entity.RequestStatus) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM donation_requests WHERE status = $1`, status).Scan(&n)
	return n, err
}

func collectRequests(rows pgx.Rows) ([]entity.DonationRequest, error) {
	reqs := make([]entity.DonationRequest, 0)
	for rows.Next() {
		dr := entity.DonationRequest{}
		if err := rows.Scan(&dr.ID, &dr.RecipientName, &dr.RecipientDistrict, &dr.RecipientUpazila,
			&dr.HospitalName, &dr.FullAddress, &dr.BloodGroup, &dr.DonationDate, &dr.DonationTime,
			&dr.RequestMessage, &dr.RequesterName, &dr.RequesterEmail, &dr.Status,
			&dr.DonorName, &dr.DonorEmail, &dr.CreatedAt, &dr.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, dr)
	}
	return reqs, rows.Err()
}

var _ repository.DonationRequestRepository = (*DonationRequestRepository)(nil)
