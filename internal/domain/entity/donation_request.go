package entity

import "time"

// RequestStatus is the lifecycle state of a donation request.
// pending is the initial state; done and canceled are terminal.
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "inprogress"
	RequestDone       RequestStatus = "done"
	RequestCanceled   RequestStatus = "canceled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestDone, RequestCanceled:
		return true
	}
	return false
}

// DonationRequest is a call for blood donation. RequesterName/RequesterEmail
// are a snapshot of the creator taken at creation time; RequesterEmail is
// immutable afterwards. DonorName/DonorEmail are set once when a donor
// commits to the request.
type DonationRequest struct {
	ID                string
	RecipientName     string
	RecipientDistrict string
	RecipientUpazila  string
	HospitalName      string
	FullAddress       string
	BloodGroup        string
	DonationDate      string
	DonationTime      string
	RequestMessage    string
	RequesterName     string
	RequesterEmail    string
	Status            RequestStatus
	DonorName         string
	DonorEmail        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
