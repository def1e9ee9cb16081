package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/librarium/internal/domain/entity"
)

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	authors := newMemAuthors()
	books := newMemBooks(authors)
	libraries := newMemLibraries(books)
	users := newMemUsers()
	svc := NewDashboardService(books, authors, libraries, users, nil)

	a := seedAuthor(t, authors, "Ted Chiang")
	b := &entity.Book{Title: "Exhalation", AuthorID: a.ID, PublicationYear: 2019}
	require.NoError(t, books.Create(ctx, b))
	l := &entity.Library{Name: "Central Library"}
	require.NoError(t, libraries.Create(ctx, l))
	seedUser(t, users, "member@example.com", entity.RoleMember)

	admin, err := svc.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.BooksCount)
	assert.Equal(t, 1, admin.AuthorsCount)
	assert.Equal(t, 1, admin.LibrariesCount)
	assert.Equal(t, 1, admin.UsersCount)

	librarian, err := svc.Librarian(ctx)
	require.NoError(t, err)
	assert.Len(t, librarian.Books, 1)
	assert.Len(t, librarian.Libraries, 1)

	member, err := svc.Member(ctx)
	require.NoError(t, err)
	assert.Len(t, member.Books, 1)
}
