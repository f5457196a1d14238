package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
)

// pagination reads page/limit query params with sane defaults.
func pagination(c *gin.Context, defLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit < 1 || limit > 100 {
		limit = defLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar":     u.AvatarURL,
		"bloodGroup": u.BloodGroup,
		"district":   u.District,
		"upazila":    u.Upazila,
		"role":       u.Role,
		"status":     u.Status,
		"createdAt":  u.CreatedAt,
		"updatedAt":  u.UpdatedAt,
	}
}

func usersJSON(users []entity.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, userJSON(&users[i]))
	}
	return out
}

func requestJSON(dr *entity.DonationRequest) gin.H {
	return gin.H{
		"id":                dr.ID,
		"recipientName":     dr.RecipientName,
		"recipientDistrict": dr.RecipientDistrict,
		"recipientUpazila":  dr.RecipientUpazila,
		"hospitalName":      dr.HospitalName,
		"fullAddress":       dr.FullAddress,
		"bloodGroup":        dr.BloodGroup,
		"donationDate":      dr.DonationDate,
		"donationTime":      dr.DonationTime,
		"requestMessage":    dr.RequestMessage,
		"requesterName":     dr.RequesterName,
		"requesterEmail":    dr.RequesterEmail,
		"status":            dr.Status,
		"donorName":         dr.DonorName,
		"donorEmail":        dr.DonorEmail,
		"createdAt":         dr.CreatedAt,
		"updatedAt":         dr.UpdatedAt,
	}
}

func requestsJSON(reqs []entity.DonationRequest) []gin.H {
	out := make([]gin.H, 0, len(reqs))
	for i := range reqs {
		out = append(out, requestJSON(&reqs[i]))
	}
	return out
}

func blogJSON(b *entity.Blog) gin.H {
	return gin.H{
		"id":        b.ID,
		"title":     b.Title,
		"thumbnail": b.Thumbnail,
		"content":   b.Content,
		"author": gin.H{
			"name":  b.AuthorName,
			"email": b.AuthorEmail,
			"role":  b.AuthorRole,
		},
		"status":    b.Status,
		"createdAt": b.CreatedAt,
		"updatedAt": b.UpdatedAt,
	}
}

func blogsJSON(blogs []entity.Blog) []gin.H {
	out := make([]gin.H, 0, len(blogs))
	for i := range blogs {
		out = append(out, blogJSON(&blogs[i]))
	}
	return out
}
