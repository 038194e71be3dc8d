package post

import "time"

// DateLayout renders dates as "Month DD, YYYY" (e.g. "June 11, 2024").
const DateLayout = "January 02, 2006"

// parseLayout accepts one- or two-digit days.
const parseLayout = "January 2, 2006"

// DefaultAuthor is stored when a post is created without an author.
const DefaultAuthor = "default_author"

// Post is a single blog entry held in the in-memory collection.
// Dates are kept as their formatted strings so they round-trip unchanged.
type Post struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Author       string `json:"author"`
	Date         string `json:"date"`
	DateModified string `json:"date_modified,omitempty"`
}

// CreateRequest is the JSON body accepted when creating a post.
// Pointer fields distinguish a missing key from an empty value.
type CreateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// UpdateRequest is the JSON body accepted when replacing a post's fields.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a stored date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(parseLayout, s)
}

// Seed returns the posts the service starts with.
func Seed() []Post {
	return []Post{
		{ID: 1, Title: "First post", Content: "This is the first post.", Author: "Gabriel", Date: "June 11, 2024"},
		{ID: 2, Title: "Second post", Content: "This is the second post.", Author: "Gabriel", Date: "June 11, 2024"},
	}
}

// Lifecycle event names passed to a service notifier.
const (
	EventCreated = "post.created"
	EventUpdated = "post.updated"
	EventDeleted = "post.deleted"
)
