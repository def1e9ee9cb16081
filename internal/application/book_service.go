package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/domain/repository"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
	"github.com/librarium/librarium/pkg/sanitize"
)

// BookService implements catalog operations on books: CRUD, bulk edits,
// and the Elasticsearch-backed search. Index writes are best effort and
// never fail the database operation.
type BookService struct {
	Books        repository.BookRepository
	Authors      repository.AuthorRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESBooksIndex string
}

func NewBookService(books repository.BookRepository, authors repository.AuthorRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *BookService {
	return &BookService{Books: books, Authors: authors, Logger: logger, ES: es, ESBooksIndex: esIndex}
}

type BookInput struct {
	Title           string
	AuthorID        string
	PublicationYear int
}

func (s *BookService) List(ctx context.Context) ([]entity.Book, error) {
	return s.Books.List(ctx)
}

func (s *BookService) Get(ctx context.Context, id string) (*entity.Book, error) {
	b, err := s.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BookService) Create(ctx context.Context, in BookInput) (*entity.Book, error) {
	title, err := sanitize.Clean(in.Title)
	if err != nil {
		return nil, err
	}
	author, err := s.Authors.GetByID(ctx, in.AuthorID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Case-insensitive duplicate check before the constraint fires, so the
	// caller gets a clean conflict instead of a driver error.
	if dup, err := s.Books.ExistsByTitleAndAuthor(ctx, title, author.ID); err != nil {
		return nil, err
	} else if dup {
		return nil, ErrDuplicate
	}

	b := &entity.Book{Title: title, AuthorID: author.ID, AuthorName: author.Name, PublicationYear: in.PublicationYear}
	if err := s.Books.Create(ctx, b); err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	s.indexBook(ctx, b)
	return b, nil
}

func (s *BookService) Update(ctx context.Context, id string, in BookInput) (*entity.Book, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title, err := sanitize.Clean(in.Title)
	if err != nil {
		return nil, err
	}
	if in.AuthorID != "" && in.AuthorID != b.AuthorID {
		author, err := s.Authors.GetByID(ctx, in.AuthorID)
		if err != nil {
			if errors.Is(err, postgres.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		b.AuthorID = author.ID
		b.AuthorName = author.Name
	}
	b.Title = title
	b.PublicationYear = in.PublicationYear
	if err := s.Books.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, postgres.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, postgres.ErrDuplicate):
			return nil, ErrDuplicate
		}
		return nil, err
	}
	s.indexBook(ctx, b)
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// validIDs filters the raw ID list down to parseable UUIDs, dropping
// duplicates. Unknown but well-formed IDs are left for the database to skip.
func validIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// BulkDelete removes every existing book in ids and reports the count.
func (s *BookService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	valid := validIDs(ids)
	if len(valid) == 0 {
		return 0, ErrNoValidIDs
	}
	n, err := s.Books.DeleteMany(ctx, valid)
	if err != nil {
		return 0, err
	}
	for _, id := range valid {
		s.removeFromIndex(ctx, id)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"requested": len(ids), "deleted": n}).Warn("bulk delete books")
	}
	return n, nil
}

// BulkSetPublicationYear stamps year on every existing book in ids.
func (s *BookService) BulkSetPublicationYear(ctx context.Context, ids []string, year int) (int, error) {
	valid := validIDs(ids)
	if len(valid) == 0 {
		return 0, ErrNoValidIDs
	}
	n, err := s.Books.UpdatePublicationYear(ctx, valid, year)
	if err != nil {
		return 0, err
	}
	for _, id := range valid {
		if b, err := s.Books.GetByID(ctx, id); err == nil {
			s.indexBook(ctx, b)
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"updated": n, "year": year}).Info("bulk update publication year")
	}
	return n, nil
}

func (s *BookService) indexBook(ctx context.Context, b *entity.Book) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":               b.ID,
		"title":            b.Title,
		"author_id":        b.AuthorID,
		"author_name":      b.AuthorName,
		"publication_year": b.PublicationYear,
		"updated_at":       time.Now().UTC().Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESBooksIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("book_id", b.ID).Warn("es index response error")
	}
}

func (s *BookService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESBooksIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("book_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// clampSize bounds a requested result size to at most 50, defaulting to 10.
func clampSize(n int) int {
	switch {
	case n <= 0:
		return 10
	case n > 50:
		return 50
	}
	return n
}

// Search performs a multi_match query over title and author name.
func (s *BookService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESBooksIndex == "" {
		return []map[string]any{}, nil
	}
	q = sanitize.Query(q)
	size = clampSize(size)
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "author_name"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESBooksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
