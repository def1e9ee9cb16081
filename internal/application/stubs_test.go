package application

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/librarium/librarium/internal/domain/entity"
	"github.com/librarium/librarium/internal/infrastructure/postgres"
)

// In-memory repository fakes used across the service tests.

type memAuthors struct {
	seq   int
	items map[string]entity.Author
}

func newMemAuthors() *memAuthors {
	return &memAuthors{items: map[string]entity.Author{}}
}

func (m *memAuthors) nextID() string {
	m.seq++
	return "a0000000-0000-0000-0000-00000000000" + strconv.Itoa(m.seq)
}

func (m *memAuthors) Create(_ context.Context, a *entity.Author) error {
	for _, cur := range m.items {
		if cur.Name == a.Name {
			return postgres.ErrDuplicate
		}
	}
	a.ID = m.nextID()
	m.items[a.ID] = *a
	return nil
}

func (m *memAuthors) GetByID(_ context.Context, id string) (*entity.Author, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &a, nil
}

func (m *memAuthors) List(_ context.Context) ([]entity.Author, error) {
	out := make([]entity.Author, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memAuthors) Update(_ context.Context, a *entity.Author) error {
	if _, ok := m.items[a.ID]; !ok {
		return postgres.ErrNotFound
	}
	m.items[a.ID] = *a
	return nil
}

func (m *memAuthors) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memAuthors) Count(_ context.Context) (int, error) { return len(m.items), nil }

type memBooks struct {
	seq     int
	items   map[string]entity.Book
	authors *memAuthors
}

func newMemBooks(authors *memAuthors) *memBooks {
	return &memBooks{items: map[string]entity.Book{}, authors: authors}
}

func (m *memBooks) nextID() string {
	m.seq++
	return "b0000000-0000-0000-0000-00000000000" + strconv.Itoa(m.seq)
}

func (m *memBooks) Create(_ context.Context, b *entity.Book) error {
	for _, cur := range m.items {
		if cur.Title == b.Title && cur.AuthorID == b.AuthorID {
			return postgres.ErrDuplicate
		}
	}
	b.ID = m.nextID()
	m.items[b.ID] = *b
	return nil
}

func (m *memBooks) GetByID(_ context.Context, id string) (*entity.Book, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &b, nil
}

func (m *memBooks) List(_ context.Context) ([]entity.Book, error) {
	out := make([]entity.Book, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBooks) ListByAuthor(_ context.Context, authorID string) ([]entity.Book, error) {
	out := make([]entity.Book, 0)
	for _, b := range m.items {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBooks) Update(_ context.Context, b *entity.Book) error {
	if _, ok := m.items[b.ID]; !ok {
		return postgres.ErrNotFound
	}
	m.items[b.ID] = *b
	return nil
}

func (m *memBooks) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memBooks) DeleteMany(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *memBooks) UpdatePublicationYear(_ context.Context, ids []string, year int) (int, error) {
	n := 0
	for _, id := range ids {
		if b, ok := m.items[id]; ok {
			b.PublicationYear = year
			m.items[id] = b
			n++
		}
	}
	return n, nil
}

func (m *memBooks) ExistsByTitleAndAuthor(_ context.Context, title, authorID string) (bool, error) {
	for _, b := range m.items {
		if strings.EqualFold(b.Title, title) && b.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBooks) Count(_ context.Context) (int, error) { return len(m.items), nil }

type memLibraries struct {
	seq         int
	items       map[string]entity.Library
	memberships map[string]map[string]struct{} // libraryID -> bookIDs
	librarians  map[string]entity.Librarian
	books       *memBooks
}

func newMemLibraries(books *memBooks) *memLibraries {
	return &memLibraries{
		items:       map[string]entity.Library{},
		memberships: map[string]map[string]struct{}{},
		librarians:  map[string]entity.Librarian{},
		books:       books,
	}
}

func (m *memLibraries) nextID() string {
	m.seq++
	return "c0000000-0000-0000-0000-00000000000" + strconv.Itoa(m.seq)
}

func (m *memLibraries) Create(_ context.Context, l *entity.Library) error {
	for _, cur := range m.items {
		if cur.Name == l.Name {
			return postgres.ErrDuplicate
		}
	}
	l.ID = m.nextID()
	m.items[l.ID] = *l
	m.memberships[l.ID] = map[string]struct{}{}
	return nil
}

func (m *memLibraries) GetByID(_ context.Context, id string) (*entity.Library, error) {
	l, ok := m.items[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &l, nil
}

func (m *memLibraries) List(_ context.Context) ([]entity.Library, error) {
	out := make([]entity.Library, 0, len(m.items))
	for _, l := range m.items {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memLibraries) Update(_ context.Context, l *entity.Library) error {
	if _, ok := m.items[l.ID]; !ok {
		return postgres.ErrNotFound
	}
	m.items[l.ID] = *l
	return nil
}

func (m *memLibraries) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.items, id)
	delete(m.memberships, id)
	return nil
}

func (m *memLibraries) Count(_ context.Context) (int, error) { return len(m.items), nil }

func (m *memLibraries) AttachBook(_ context.Context, libraryID, bookID string) error {
	set, ok := m.memberships[libraryID]
	if !ok {
		return postgres.ErrNotFound
	}
	set[bookID] = struct{}{}
	return nil
}

func (m *memLibraries) DetachBook(_ context.Context, libraryID, bookID string) error {
	set, ok := m.memberships[libraryID]
	if !ok {
		return postgres.ErrNotFound
	}
	if _, ok := set[bookID]; !ok {
		return postgres.ErrNotFound
	}
	delete(set, bookID)
	return nil
}

func (m *memLibraries) ListBooks(_ context.Context, libraryID string) ([]entity.Book, error) {
	out := make([]entity.Book, 0)
	for id := range m.memberships[libraryID] {
		if b, ok := m.books.items[id]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memLibraries) CreateLibrarian(_ context.Context, lb *entity.Librarian) error {
	for _, cur := range m.librarians {
		if cur.LibraryID == lb.LibraryID {
			return postgres.ErrDuplicate
		}
	}
	m.seq++
	lb.ID = "d0000000-0000-0000-0000-00000000000" + strconv.Itoa(m.seq)
	m.librarians[lb.ID] = *lb
	return nil
}

func (m *memLibraries) GetLibrarianByLibrary(_ context.Context, libraryID string) (*entity.Librarian, error) {
	for _, lb := range m.librarians {
		if lb.LibraryID == libraryID {
			out := lb
			return &out, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (m *memLibraries) ListLibrarians(_ context.Context) ([]entity.Librarian, error) {
	out := make([]entity.Librarian, 0, len(m.librarians))
	for _, lb := range m.librarians {
		out = append(out, lb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memLibraries) DeleteLibrarian(_ context.Context, id string) error {
	if _, ok := m.librarians[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(m.librarians, id)
	return nil
}

type memUsers struct {
	seq      int
	users    map[string]entity.User
	profiles map[string]entity.UserProfile // keyed by user ID
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]entity.User{}, profiles: map[string]entity.UserProfile{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User, p *entity.UserProfile) error {
	for _, cur := range m.users {
		if cur.Email == u.Email {
			return postgres.ErrDuplicate
		}
	}
	m.seq++
	u.ID = "e0000000-0000-0000-0000-00000000000" + strconv.Itoa(m.seq)
	if p.Role == "" {
		p.Role = entity.RoleMember
	}
	p.UserID = u.ID
	m.users[u.ID] = *u
	m.profiles[u.ID] = *p
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return postgres.ErrNotFound
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) Count(_ context.Context) (int, error) { return len(m.users), nil }

func (m *memUsers) GetProfile(_ context.Context, userID string) (*entity.UserProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return &p, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, p *entity.UserProfile) error {
	if _, ok := m.profiles[p.UserID]; !ok {
		return postgres.ErrNotFound
	}
	m.profiles[p.UserID] = *p
	return nil
}

func (m *memUsers) SetRole(_ context.Context, userID, role string) error {
	p, ok := m.profiles[userID]
	if !ok {
		return postgres.ErrNotFound
	}
	p.Role = role
	m.profiles[userID] = p
	return nil
}

type memAccess struct {
	groups      map[string]entity.Group        // keyed by ID
	memberships map[string]map[string]struct{} // userID -> groupIDs
	permCalls   int
}

func newMemAccess() *memAccess {
	return &memAccess{groups: map[string]entity.Group{}, memberships: map[string]map[string]struct{}{}}
}

func (m *memAccess) addGroup(id, name string, perms ...string) {
	m.groups[id] = entity.Group{ID: id, Name: name, Permissions: perms}
}

func (m *memAccess) ListGroups(_ context.Context) ([]entity.Group, error) {
	out := make([]entity.Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memAccess) GetGroupByName(_ context.Context, name string) (*entity.Group, error) {
	for _, g := range m.groups {
		if g.Name == name {
			out := g
			return &out, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (m *memAccess) UserPermissions(_ context.Context, userID string) ([]string, error) {
	m.permCalls++
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for gid := range m.memberships[userID] {
		for _, code := range m.groups[gid].Permissions {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memAccess) SetUserGroups(_ context.Context, userID string, groupIDs []string) error {
	set := map[string]struct{}{}
	for _, gid := range groupIDs {
		set[gid] = struct{}{}
	}
	m.memberships[userID] = set
	return nil
}

func (m *memAccess) AddUserToGroup(_ context.Context, userID, groupID string) error {
	if m.memberships[userID] == nil {
		m.memberships[userID] = map[string]struct{}{}
	}
	m.memberships[userID][groupID] = struct{}{}
	return nil
}
