package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
)

// BlogService manages site content. Creation is open to any authenticated
// account (the author snapshot records who wrote it); status changes and
// deletion are admin-only, which the route layer enforces.
type BlogService struct {
	Repo   repository.BlogRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewBlogService(repo repository.BlogRepository, users repository.UserRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Repo: repo, Users: users, Logger: logger}
}

type BlogInput struct {
	Title     string
	Thumbnail string
	Content   string
}

func (s *BlogService) Create(ctx context.Context, actorEmail string, in BlogInput) (*entity.Blog, error) {
	u, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	b := &entity.Blog{
		Title:       in.Title,
		Thumbnail:   in.Thumbnail,
		Content:     in.Content,
		AuthorName:  u.Name,
		AuthorEmail: u.Email,
		AuthorRole:  u.Role,
		Status:      entity.BlogDraft,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BlogService) List(ctx context.Context, status entity.BlogStatus) ([]entity.Blog, error) {
	return s.Repo.List(ctx, status)
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "blog not found")
	}
	return b, nil
}

func (s *BlogService) SetStatus(ctx context.Context, id string, status entity.BlogStatus) error {
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return asNotFound(err, "blog not found")
	}
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return asNotFound(err, "blog not found")
	}
	return nil
}
