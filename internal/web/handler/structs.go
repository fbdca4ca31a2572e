package handler

import (
	"time"

	"github.com/conftrack/conftrack/internal/db/models"
)

// UserPublic is the API representation of a user account.
type UserPublic struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Superuser bool      `json:"superuser"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserPublic converts a user model to its API representation.
func NewUserPublic(u *models.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Superuser: u.Superuser,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TagPublic is the API representation of a tag.
type TagPublic struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID uint64 `json:"user_id"`
}

// NewTagPublic converts a tag model to its API representation.
func NewTagPublic(t *models.Tag) TagPublic {
	return TagPublic{
		ID:     t.ID,
		Name:   t.Name,
		Color:  t.Color,
		UserID: t.UserID,
	}
}

// NewTagsPublic converts a slice of tag models.
func NewTagsPublic(tags []models.Tag) []TagPublic {
	out := make([]TagPublic, len(tags))
	for i := range tags {
		out[i] = NewTagPublic(&tags[i])
	}

	return out
}

// ConferencePublic is the API representation of a conference.
type ConferencePublic struct {
	ID               uint64      `json:"id"`
	Name             string      `json:"name"`
	StartDate        *time.Time  `json:"start_date,omitempty"`
	EndDate          *time.Time  `json:"end_date,omitempty"`
	Location         string      `json:"location,omitempty"`
	WebsiteURL       string      `json:"website_url,omitempty"`
	AbstractDeadline *time.Time  `json:"abstract_deadline,omitempty"`
	PaperDeadline    *time.Time  `json:"paper_deadline,omitempty"`
	Tags             []TagPublic `json:"tags"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewConferencePublic converts a conference model to its API representation.
func NewConferencePublic(c *models.Conference) ConferencePublic {
	return ConferencePublic{
		ID:               c.ID,
		Name:             c.Name,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		Location:         c.Location,
		WebsiteURL:       c.WebsiteURL,
		AbstractDeadline: c.AbstractDeadline,
		PaperDeadline:    c.PaperDeadline,
		Tags:             NewTagsPublic(c.Tags),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
