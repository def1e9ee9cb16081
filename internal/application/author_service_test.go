package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/pkg/sanitize"
)

func newAuthorFixture(t *testing.T) (*AuthorService, *memAuthors, *memBooks) {
	t.Helper()
	authors := newMemAuthors()
	books := newMemBooks(authors)
	return NewAuthorService(authors, books, nil), authors, books
}

func TestAuthorCreate(t *testing.T) {
	svc, _, _ := newAuthorFixture(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "  Ursula K. Le Guin  ")
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", a.Name)

	_, err = svc.Create(ctx, "Ursula K. Le Guin")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Create(ctx, "DROP TABLE authors; --1337")
	assert.ErrorIs(t, err, sanitize.ErrInvalidName)
}

func TestAuthorGetWithStats(t *testing.T) {
	svc, authors, books := newAuthorFixture(t)
	ctx := context.Background()
	a := seedAuthor(t, authors, "Ursula K. Le Guin")

	year := time.Now().Year()
	for _, b := range []entity.Book{
		{Title: "The Left Hand of Darkness", AuthorID: a.ID, PublicationYear: 1969},
		{Title: "The Dispossessed", AuthorID: a.ID, PublicationYear: 1974},
		{Title: "Late Essays", AuthorID: a.ID, PublicationYear: year - 1},
	} {
		book := b
		require.NoError(t, books.Create(ctx, &book))
	}

	detail, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Books, 3)
	assert.Equal(t, 3, detail.Stats.BooksCount)
	assert.Equal(t, 1, detail.Stats.RecentBooksCount)
	assert.Equal(t, 1969, detail.Stats.FirstPublicationYear)
	assert.Equal(t, year-1, detail.Stats.LatestPublicationYear)
	assert.Equal(t, year-1-1969, detail.Stats.PublicationSpan)
}

func TestComputeAuthorStatsEmpty(t *testing.T) {
	st := ComputeAuthorStats(nil, time.Now())
	assert.Zero(t, st.BooksCount)
	assert.Zero(t, st.FirstPublicationYear)
	assert.Zero(t, st.PublicationSpan)
}

func TestComputeAuthorStatsRecentWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	books := []entity.Book{
		{PublicationYear: 2016}, // exactly on the window boundary
		{PublicationYear: 2015},
	}
	st := ComputeAuthorStats(books, now)
	assert.Equal(t, 1, st.RecentBooksCount)
}

func TestAuthorUpdate(t *testing.T) {
	svc, authors, _ := newAuthorFixture(t)
	ctx := context.Background()
	a := seedAuthor(t, authors, "U. Le Guin")

	updated, err := svc.Update(ctx, a.ID, "Ursula K. Le Guin")
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", updated.Name)

	_, err = svc.Update(ctx, "a0000000-0000-0000-0000-000000000099", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthorDelete(t *testing.T) {
	svc, authors, _ := newAuthorFixture(t)
	ctx := context.Background()
	a := seedAuthor(t, authors, "Ted Chiang")

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrNotFound)
}
