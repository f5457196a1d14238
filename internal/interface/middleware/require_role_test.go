package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/policy"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
)

type stubUserRepo struct {
	users map[string]*entity.User
	// when set, GetByEmail fails with this error instead of looking up.
	failWith error
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}
func (s *stubUserRepo) List(context.Context, int, int) ([]entity.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) UpdateProfile(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) UpdateStatus(context.Context, string, entity.UserStatus) error {
	return nil
}
func (s *stubUserRepo) UpdateRole(context.Context, string, entity.Role) error { return nil }
func (s *stubUserRepo) SearchDonors(context.Context, repository.DonorFilter) ([]entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) CountByRole(context.Context, entity.Role) (int64, error) { return 0, nil }

func roleTestRouter(users repository.UserRepository, actorEmail string, rule policy.RoleRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) {
			if actorEmail != "" {
				c.Set(CtxActorEmail, actorEmail)
			}
		},
		RequireRole(users, rule),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireRole(t *testing.T) {
	users := &stubUserRepo{users: map[string]*entity.User{
		"admin@x.com":     {Email: "admin@x.com", Role: entity.RoleAdmin, Status: entity.UserActive},
		"donor@x.com":     {Email: "donor@x.com", Role: entity.RoleDonor, Status: entity.UserActive},
		"volunteer@x.com": {Email: "volunteer@x.com", Role: entity.RoleVolunteer, Status: entity.UserActive},
	}}

	tests := []struct {
		name       string
		actorEmail string
		rule       policy.RoleRule
		wantCode   int
	}{
		{"admin allowed", "admin@x.com", policy.CanManageUsers, http.StatusOK},
		{"donor denied", "donor@x.com", policy.CanListAllRequests, http.StatusForbidden},
		{"volunteer passes elevated gate", "volunteer@x.com", policy.CanListAllRequests, http.StatusOK},
		{"volunteer denied admin gate", "volunteer@x.com", policy.CanManageBlogs, http.StatusForbidden},
		{"unknown account denied", "ghost@x.com", policy.CanManageUsers, http.StatusForbidden},
		{"no verified identity", "", policy.CanManageUsers, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := roleTestRouter(users, tt.actorEmail, tt.rule)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRequireRoleDirectoryFailure(t *testing.T) {
	users := &stubUserRepo{failWith: errors.New("connection refused")}
	r := roleTestRouter(users, "admin@x.com", policy.CanManageUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	// A directory outage must not read as an authorization verdict.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
