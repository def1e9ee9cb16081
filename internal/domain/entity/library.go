package entity

import "time"

// Library holds a many-to-many set of books via the library_books table.
type Library struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Librarian is linked one-to-one with a Library.
type Librarian struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LibraryID string    `json:"library_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LibraryStats is the aggregate view behind the library stats endpoint.
type LibraryStats struct {
	BooksCount     int    `json:"books_count"`
	AuthorsCount   int    `json:"authors_count"`
	OldestBookYear int    `json:"oldest_book_year"`
	NewestBookYear int    `json:"newest_book_year"`
	HasLibrarian   bool   `json:"has_librarian"`
	LibrarianName  string `json:"librarian_name,omitempty"`
}
