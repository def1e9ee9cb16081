package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
	"github.com/librarium/librarium/pkg/sanitize"
)

// AuthorService implements author CRUD and the computed publication stats.
type AuthorService struct {
	Authors repository.AuthorRepository
	Books   repository.BookRepository
	Logger  *logrus.Logger
}

func NewAuthorService(authors repository.AuthorRepository, books repository.BookRepository, logger *logrus.Logger) *AuthorService {
	return &AuthorService{Authors: authors, Books: books, Logger: logger}
}

// AuthorDetail is an author together with its books and computed stats.
type AuthorDetail struct {
	Author entity.Author      `json:"author"`
	Books  []entity.Book      `json:"books"`
	Stats  entity.AuthorStats `json:"stats"`
}

func (s *AuthorService) List(ctx context.Context) ([]entity.Author, error) {
	return s.Authors.List(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id string) (*AuthorDetail, error) {
	a, err := s.Authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	books, err := s.Books.ListByAuthor(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorDetail{Author: *a, Books: books, Stats: ComputeAuthorStats(books, time.Now())}, nil
}

func (s *AuthorService) Create(ctx context.Context, name string) (*entity.Author, error) {
	clean, err := sanitize.CleanName(name)
	if err != nil {
		return nil, err
	}
	a := &entity.Author{Name: clean}
	if err := s.Authors.Create(ctx, a); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return a, nil
}

func (s *AuthorService) Update(ctx context.Context, id, name string) (*entity.Author, error) {
	clean, err := sanitize.CleanName(name)
	if err != nil {
		return nil, err
	}
	a, err := s.Authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Name = clean
	if err := s.Authors.Update(ctx, a); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return a, nil
}

// Delete cascades to the author's books at the database level.
func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := s.Authors.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("author_id", id).Warn("author deleted with cascading books")
	}
	return nil
}

// ComputeAuthorStats derives publication figures from an author's books.
// A recent book is one published within entity.RecentYears of now.
func ComputeAuthorStats(books []entity.Book, now time.Time) entity.AuthorStats {
	st := entity.AuthorStats{BooksCount: len(books)}
	if len(books) == 0 {
		return st
	}
	first, latest := books[0].PublicationYear, books[0].PublicationYear
	for _, b := range books {
		if b.IsRecent(now) {
			st.RecentBooksCount++
		}
		if b.PublicationYear < first {
			first = b.PublicationYear
		}
		if b.PublicationYear > latest {
			latest = b.PublicationYear
		}
	}
	st.FirstPublicationYear = first
	st.LatestPublicationYear = latest
	st.PublicationSpan = latest - first
	return st
}
