package entity

import "time"

// RecentYears is the window used to flag a book as recent.
const RecentYears = 10

// Book belongs to exactly one Author. (Title, AuthorID) is unique.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name,omitempty"` // populated by joins, not a column of books
	PublicationYear int       `json:"publication_year"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsRecent reports whether the book was published within the last RecentYears.
func (b Book) IsRecent(now time.Time) bool {
	return b.PublicationYear >= now.Year()-RecentYears
}
