package entity

import "time"

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

func (s BlogStatus) Valid() bool {
	return s == BlogDraft || s == BlogPublished
}

// Blog is site content. The author fields are a provenance snapshot only;
// mutation and deletion rights belong to admins regardless of authorship.
type Blog struct {
	ID          string
	Title       string
	Thumbnail   string
	Content     string
	AuthorName  string
	AuthorEmail string
	AuthorRole  Role
	Status      BlogStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
