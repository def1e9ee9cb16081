package entity

import "time"

// Author is the parent side of the one-to-many relation with Book.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorStats carries computed figures derived from an author's books.
type AuthorStats struct {
	BooksCount            int `json:"books_count"`
	RecentBooksCount      int `json:"recent_books_count"`
	FirstPublicationYear  int `json:"first_publication_year"`
	LatestPublicationYear int `json:"latest_publication_year"`
	PublicationSpan       int `json:"publication_span"`
}
