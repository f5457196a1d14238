package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/application"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/middleware"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/response"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/validation"
)

type RequestHandler struct {
	Svc    *application.RequestService
	Logger *logrus.Logger
}

func NewRequestHandler(svc *application.RequestService, logger *logrus.Logger) *RequestHandler {
	return &RequestHandler{Svc: svc, Logger: logger}
}

// requestPayload is the caller-editable shape for create and update. It
// has no status or identity fields, so those can never arrive through the
// general mutation paths.
type requestPayload struct {
	RecipientName     string `json:"recipientName" binding:"required"`
	RecipientDistrict string `json:"recipientDistrict" binding:"required"`
	RecipientUpazila  string `json:"recipientUpazila" binding:"required"`
	HospitalName      string `json:"hospitalName" binding:"required"`
	FullAddress       string `json:"fullAddress" binding:"required"`
	BloodGroup        string `json:"bloodGroup" binding:"required,bloodgroup"`
	DonationDate      string `json:"donationDate" binding:"required"`
	DonationTime      string `json:"donationTime" binding:"required"`
	RequestMessage    string `json:"requestMessage" binding:"required"`
}

func (p requestPayload) input() application.RequestInput {
	return application.RequestInput{
		RecipientName:     p.RecipientName,
		RecipientDistrict: p.RecipientDistrict,
		RecipientUpazila:  p.RecipientUpazila,
		HospitalName:      p.HospitalName,
		FullAddress:       p.FullAddress,
		BloodGroup:        p.BloodGroup,
		DonationDate:      p.DonationDate,
		DonationTime:      p.DonationTime,
		RequestMessage:    p.RequestMessage,
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req requestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}
	dr, err := h.Svc.Create(c.Request.Context(), middleware.ActorEmail(c), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": dr.ID}, "request created", nil)
}

func (h *RequestHandler) Recent(c *gin.Context) {
	reqs, err := h.Svc.Recent(c.Request.Context(), middleware.ActorEmail(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestsJSON(reqs), "recent requests", nil)
}

// statusQuery validates the optional ?status= filter.
func statusQuery(c *gin.Context) (entity.RequestStatus, bool) {
	st := entity.RequestStatus(c.Query("status"))
	if st != "" && !st.Valid() {
		response.Error(c, http.StatusBadRequest, "invalid status value", nil)
		return "", false
	}
	return st, true
}

func (h *RequestHandler) Mine(c *gin.Context) {
	st, ok := statusQuery(c)
	if !ok {
		return
	}
	page, limit := pagination(c, 5)
	reqs, total, err := h.Svc.Mine(c.Request.Context(), middleware.ActorEmail(c), st, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestsJSON(reqs), "my requests",
		gin.H{"totalPages": totalPages(total, limit), "page": page})
}

// ListAll is the elevated listing for admins and volunteers.
func (h *RequestHandler) ListAll(c *gin.Context) {
	st, ok := statusQuery(c)
	if !ok {
		return
	}
	page, limit := pagination(c, 10)
	reqs, total, err := h.Svc.ListAll(c.Request.Context(), st, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestsJSON(reqs), "donation requests",
		gin.H{"totalPages": totalPages(total, limit), "page": page})
}

// Public serves the anonymous listing; only pending requests ever appear.
func (h *RequestHandler) Public(c *gin.Context) {
	page, limit := pagination(c, 10)
	reqs, total, err := h.Svc.Public(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestsJSON(reqs), "public requests",
		gin.H{"totalPages": totalPages(total, limit), "page": page})
}

func (h *RequestHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}
	dr, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestJSON(dr), "donation request", nil)
}

func (h *RequestHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}
	var req requestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}
	dr, err := h.Svc.Update(c.Request.Context(), middleware.ActorEmail(c), id, req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestJSON(dr), "donation request updated successfully", nil)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending inprogress done canceled"`
}

func (h *RequestHandler) Transition(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid status value", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Transition(c.Request.Context(), middleware.ActorEmail(c), id, entity.RequestStatus(req.Status)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "status updated successfully", nil)
}

// Donate claims a pending request for the authenticated actor.
func (h *RequestHandler) Donate(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}
	dr, err := h.Svc.Donate(c.Request.Context(), middleware.ActorEmail(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requestJSON(dr), "donation confirmed successfully", nil)
}

func (h *RequestHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid request ID", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorEmail(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "donation request deleted successfully", nil)
}

func (h *RequestHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "stats", nil)
}
