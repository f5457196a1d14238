package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/apperr"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/helpers"
)

// UserService covers registration, profiles, the admin user directory, and
// the public donor search.
type UserService struct {
	Repo          repository.UserRepository
	GCS           *storage.Client
	GCSBucket     string
	ES            *elasticsearch.Client
	ESDonorsIndex string
	Logger        *logrus.Logger
}

func NewUserService(repo repository.UserRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esDonorsIndex string, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:          repo,
		GCS:           gcs,
		GCSBucket:     gcsBucket,
		ES:            es,
		ESDonorsIndex: esDonorsIndex,
		Logger:        logger,
	}
}

type RegisterInput struct {
	Name       string
	Email      string
	AvatarURL  string
	BloodGroup string
	District   string
	Upazila    string
}

// Register creates an account with the default donor role and active status.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	u := &entity.User{
		Email:      in.Email,
		Name:       in.Name,
		AvatarURL:  in.AvatarURL,
		BloodGroup: in.BloodGroup,
		District:   in.District,
		Upazila:    in.Upazila,
		Role:       entity.RoleDonor,
		Status:     entity.UserActive,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.New(apperr.Conflict, "user already exists")
		}
		return nil, err
	}
	s.indexDonor(ctx, u)
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name       string
	AvatarURL  string
	BloodGroup string
	District   string
	Upazila    string
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	u.Name = in.Name
	u.BloodGroup = in.BloodGroup
	u.District = in.District
	u.Upazila = in.Upazila
	if in.AvatarURL != "" {
		u.AvatarURL = in.AvatarURL
	}
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		return nil, asNotFound(err, "user not found")
	}
	s.indexDonor(ctx, u)
	return u, nil
}

// UploadAvatar stores an avatar object in GCS and records its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, email string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.New(apperr.Dependency, "avatar storage not configured")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", asNotFound(err, "user not found")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.UpdateProfile(ctx, u); err != nil {
		return "", err
	}
	s.indexDonor(ctx, u)
	return url, nil
}

func (s *UserService) RoleOf(ctx context.Context, email string) (entity.Role, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", asNotFound(err, "user not found")
	}
	return u.Role, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]entity.User, int64, error) {
	return s.Repo.List(ctx, page, limit)
}

// SetStatus flips an account between active and blocked. The admin-only
// gate lives at the route layer; value validity is checked at binding.
func (s *UserService) SetStatus(ctx context.Context, id string, status entity.UserStatus) error {
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return asNotFound(err, "user not found")
	}
	s.reindexByID(ctx, id)
	return nil
}

func (s *UserService) SetRole(ctx context.Context, id string, role entity.Role) error {
	if err := s.Repo.UpdateRole(ctx, id, role); err != nil {
		return asNotFound(err, "user not found")
	}
	s.reindexByID(ctx, id)
	return nil
}

// SearchDonors answers the public donor directory search. When
// Elasticsearch is configured the donor index serves the query; otherwise
// the relational directory is filtered directly.
func (s *UserService) SearchDonors(ctx context.Context, f repository.DonorFilter) ([]entity.User, error) {
	if f.BloodGroup != "" && !entity.ValidBloodGroup(f.BloodGroup) {
		return nil, apperr.New(apperr.Validation, "invalid blood group")
	}
	if s.ES != nil && s.ESDonorsIndex != "" {
		donors, err := s.searchDonorsES(ctx, f)
		if err == nil {
			return donors, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es donor search failed, falling back to directory")
		}
	}
	return s.Repo.SearchDonors(ctx, f)
}

type donorDoc struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	BloodGroup string `json:"blood_group"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

func (s *UserService) searchDonorsES(ctx context.Context, f repository.DonorFilter) ([]entity.User, error) {
	filters := make([]map[string]any, 0, 3)
	for field, val := range map[string]string{
		"blood_group.keyword": f.BloodGroup,
		"district.keyword":    f.District,
		"upazila.keyword":     f.Upazila,
	} {
		if val != "" {
			filters = append(filters, map[string]any{"term": map[string]any{field: val}})
		}
	}
	query := map[string]any{
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
		"size":  100,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESDonorsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source donorDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	donors := make([]entity.User, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		donors = append(donors, entity.User{
			ID:         d.ID,
			Email:      d.Email,
			Name:       d.Name,
			AvatarURL:  d.AvatarURL,
			BloodGroup: d.BloodGroup,
			District:   d.District,
			Upazila:    d.Upazila,
			Role:       entity.RoleDonor,
			Status:     entity.UserActive,
		})
	}
	return donors, nil
}

// indexDonor keeps the donor search index in step with the directory.
// Only active donors are searchable; anyone else is removed from the index.
func (s *UserService) indexDonor(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESDonorsIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if u.Role != entity.RoleDonor || u.Status != entity.UserActive {
		req := esapi.DeleteRequest{Index: s.ESDonorsIndex, DocumentID: u.ID}
		if res, err := req.Do(c, s.ES); err == nil {
			_ = res.Body.Close()
		}
		return
	}

	doc := donorDoc{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		BloodGroup: u.BloodGroup,
		District:   u.District,
		Upazila:    u.Upazila,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESDonorsIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *UserService) reindexByID(ctx context.Context, id string) {
	if s.ES == nil || s.ESDonorsIndex == "" {
		return
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return
	}
	s.indexDonor(ctx, u)
}
