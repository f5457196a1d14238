package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/application"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/interface/middleware"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/response"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Avatar     string `json:"avatar" binding:"required"`
	BloodGroup string `json:"bloodGroup" binding:"required,bloodgroup"`
	District   string `json:"district" binding:"required"`
	Upazila    string `json:"upazila" binding:"required"`
}

// Register is the open registration endpoint. Role and status are not
// caller-supplied; every account starts as an active donor.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		AvatarURL:  req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"userId": u.ID}, "user registered successfully", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), middleware.ActorEmail(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

type updateProfileRequest struct {
	Name       string `json:"name" binding:"required"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup" binding:"required,bloodgroup"`
	District   string `json:"district" binding:"required"`
	Upazila    string `json:"upazila" binding:"required"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "missing required fields", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.ActorEmail(c), application.UpdateProfileInput{
		Name:       req.Name,
		AvatarURL:  req.Avatar,
		BloodGroup: req.BloodGroup,
		District:   req.District,
		Upazila:    req.Upazila,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
}

// UploadAvatar accepts a multipart image and stores it in object storage.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), middleware.ActorEmail(c), file,
		header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar": url}, "avatar uploaded", nil)
}

func (h *UserHandler) RoleOf(c *gin.Context) {
	role, err := h.Svc.RoleOf(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"role": role}, "role", nil)
}

// List is the admin user directory, newest first.
func (h *UserHandler) List(c *gin.Context) {
	page, limit := pagination(c, 10)
	users, total, err := h.Svc.List(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, usersJSON(users), "users",
		gin.H{"totalPages": totalPages(total, limit), "page": page})
}

type setUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid user ID", nil)
		return
	}
	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid status value", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), id, entity.UserStatus(req.Status)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user status updated successfully", nil)
}

type setUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=donor volunteer admin"`
}

func (h *UserHandler) SetRole(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		response.Error(c, http.StatusBadRequest, "invalid user ID", nil)
		return
	}
	var req setUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid role value", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SetRole(c.Request.Context(), id, entity.Role(req.Role)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user role updated successfully", nil)
}

// SearchDonors is the public donor directory. Only active donors are ever
// returned.
func (h *UserHandler) SearchDonors(c *gin.Context) {
	donors, err := h.Svc.SearchDonors(c.Request.Context(), repository.DonorFilter{
		BloodGroup: c.Query("bloodGroup"),
		District:   c.Query("district"),
		Upazila:    c.Query("upazila"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, usersJSON(donors), "donors", nil)
}
