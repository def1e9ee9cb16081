package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
)

// DashboardService builds the role-scoped dashboard payloads.
type DashboardService struct {
	Books     repository.BookRepository
	Authors   repository.AuthorRepository
	Libraries repository.LibraryRepository
	Users     repository.UserRepository
	Logger    *logrus.Logger
}

func NewDashboardService(books repository.BookRepository, authors repository.AuthorRepository, libraries repository.LibraryRepository, users repository.UserRepository, logger *logrus.Logger) *DashboardService {
	return &DashboardService{Books: books, Authors: authors, Libraries: libraries, Users: users, Logger: logger}
}

// AdminDashboard holds the site-wide totals.
type AdminDashboard struct {
	BooksCount     int `json:"books_count"`
	AuthorsCount   int `json:"authors_count"`
	LibrariesCount int `json:"libraries_count"`
	UsersCount     int `json:"users_count"`
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	d := &AdminDashboard{}
	var err error
	if d.BooksCount, err = s.Books.Count(ctx); err != nil {
		return nil, err
	}
	if d.AuthorsCount, err = s.Authors.Count(ctx); err != nil {
		return nil, err
	}
	if d.LibrariesCount, err = s.Libraries.Count(ctx); err != nil {
		return nil, err
	}
	if d.UsersCount, err = s.Users.Count(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// LibrarianDashboard lists the working set a librarian manages.
type LibrarianDashboard struct {
	Books     []entity.Book    `json:"books"`
	Libraries []entity.Library `json:"libraries"`
}

func (s *DashboardService) Librarian(ctx context.Context) (*LibrarianDashboard, error) {
	books, err := s.Books.List(ctx)
	if err != nil {
		return nil, err
	}
	libraries, err := s.Libraries.List(ctx)
	if err != nil {
		return nil, err
	}
	return &LibrarianDashboard{Books: books, Libraries: libraries}, nil
}

// MemberDashboard shows the catalog available to a member.
type MemberDashboard struct {
	Books []entity.Book `json:"books"`
}

func (s *DashboardService) Member(ctx context.Context) (*MemberDashboard, error) {
	books, err := s.Books.List(ctx)
	if err != nil {
		return nil, err
	}
	return &MemberDashboard{Books: books}, nil
}
