package models

// Tag is a per-user categorization label attached to conferences.
type Tag struct {
	// ID is the unique identifier for the tag.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name of the tag.
	Name string `gorm:"size:100;not null"`
	// Color is a hex color used by clients when rendering the tag.
	Color string `gorm:"size:20"`
	// UserID is the owning user.
	UserID uint64 `gorm:"index;not null"`
}

// DefaultTags returns the starter labels attached to every newly created user,
// local and directory-provisioned alike.
func DefaultTags(userID uint64) []Tag {
	return []Tag{
		{Name: "Interested", Color: "#64748b", UserID: userID},
		{Name: "Planning", Color: "#0ea5e9", UserID: userID},
		{Name: "Submitted", Color: "#f59e0b", UserID: userID},
		{Name: "Accepted", Color: "#22c55e", UserID: userID},
		{Name: "Attending", Color: "#8b5cf6", UserID: userID},
	}
}
