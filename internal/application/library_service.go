package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
	"github.com/librarium/librarium/pkg/sanitize"
)

// LibraryService covers libraries, their book memberships, and the
// one-to-one librarian assignment.
type LibraryService struct {
	Libraries repository.LibraryRepository
	Books     repository.BookRepository
	Logger    *logrus.Logger
}

func NewLibraryService(libraries repository.LibraryRepository, books repository.BookRepository, logger *logrus.Logger) *LibraryService {
	return &LibraryService{Libraries: libraries, Books: books, Logger: logger}
}

// LibraryDetail is a library with its current book set.
type LibraryDetail struct {
	Library entity.Library
	Books   []entity.Book
}

func (s *LibraryService) List(ctx context.Context) ([]entity.Library, error) {
	return s.Libraries.List(ctx)
}

func (s *LibraryService) Get(ctx context.Context, id string) (*LibraryDetail, error) {
	l, err := s.Libraries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	books, err := s.Libraries.ListBooks(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LibraryDetail{Library: *l, Books: books}, nil
}

func (s *LibraryService) Create(ctx context.Context, name string) (*entity.Library, error) {
	clean, err := sanitize.Clean(name)
	if err != nil {
		return nil, err
	}
	l := &entity.Library{Name: clean}
	if err := s.Libraries.Create(ctx, l); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return l, nil
}

func (s *LibraryService) Update(ctx context.Context, id, name string) (*entity.Library, error) {
	clean, err := sanitize.Clean(name)
	if err != nil {
		return nil, err
	}
	l, err := s.Libraries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l.Name = clean
	if err := s.Libraries.Update(ctx, l); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return l, nil
}

func (s *LibraryService) Delete(ctx context.Context, id string) error {
	if err := s.Libraries.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AttachBook adds a book to the library's set. Attaching an already
// attached book is a no-op.
func (s *LibraryService) AttachBook(ctx context.Context, libraryID, bookID string) error {
	if _, err := s.Libraries.GetByID(ctx, libraryID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.Books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.Libraries.AttachBook(ctx, libraryID, bookID)
}

func (s *LibraryService) DetachBook(ctx context.Context, libraryID, bookID string) error {
	if err := s.Libraries.DetachBook(ctx, libraryID, bookID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Stats aggregates the library's book set for the stats endpoint.
func (s *LibraryService) Stats(ctx context.Context, libraryID string) (*entity.LibraryStats, error) {
	detail, err := s.Get(ctx, libraryID)
	if err != nil {
		return nil, err
	}
	st := &entity.LibraryStats{BooksCount: len(detail.Books)}
	authors := map[string]struct{}{}
	for i, b := range detail.Books {
		authors[b.AuthorID] = struct{}{}
		if i == 0 || b.PublicationYear < st.OldestBookYear {
			st.OldestBookYear = b.PublicationYear
		}
		if b.PublicationYear > st.NewestBookYear {
			st.NewestBookYear = b.PublicationYear
		}
	}
	st.AuthorsCount = len(authors)

	lb, err := s.Libraries.GetLibrarianByLibrary(ctx, libraryID)
	switch {
	case err == nil:
		st.HasLibrarian = true
		st.LibrarianName = lb.Name
	case errors.Is(err, postgres.ErrNotFound):
		// no librarian assigned yet
	default:
		return nil, err
	}
	return st, nil
}

// AssignLibrarian creates the one-to-one librarian for a library.
func (s *LibraryService) AssignLibrarian(ctx context.Context, name, libraryID string) (*entity.Librarian, error) {
	clean, err := sanitize.CleanName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.Libraries.GetByID(ctx, libraryID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.Libraries.GetLibrarianByLibrary(ctx, libraryID); err == nil {
		return nil, ErrLibrarianAssigned
	} else if !errors.Is(err, postgres.ErrNotFound) {
		return nil, err
	}
	lb := &entity.Librarian{Name: clean, LibraryID: libraryID}
	if err := s.Libraries.CreateLibrarian(ctx, lb); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrLibrarianAssigned
		}
		return nil, err
	}
	return lb, nil
}

func (s *LibraryService) ListLibrarians(ctx context.Context) ([]entity.Librarian, error) {
	return s.Libraries.ListLibrarians(ctx)
}

func (s *LibraryService) RemoveLibrarian(ctx context.Context, id string) error {
	if err := s.Libraries.DeleteLibrarian(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
