package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/librarium/librarium/config"
	"github.com/librarium/librarium/pkg/helpers"
)

// Seed command: idempotent sample data for local development. Creates
// the permission catalog, the built-in groups, one demo user per role,
// and a small set of authors, books, and libraries.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	permIDs := seedPermissions(db)
	groupIDs := seedGroups(db, permIDs)
	seedUsers(db, groupIDs)
	bookIDs := seedCatalog(db)
	seedLibraries(db, bookIDs)

	fmt.Println("seed complete")
}

var permissions = map[string]string{
	"book:view":      "Can view book",
	"book:view_all":  "Can view all books",
	"book:create":    "Can create book",
	"book:edit":      "Can edit book",
	"book:delete":    "Can delete book",
	"book:bulk":      "Can bulk edit books",
	"author:manage":  "Can manage authors",
	"library:manage": "Can manage libraries",
	"library:stats":  "Can view library stats",
}

var groupGrants = map[string][]string{
	"Viewers": {"book:view", "book:view_all"},
	"Editors": {"book:view", "book:view_all", "book:create", "book:edit"},
	"Admins": {
		"book:view", "book:view_all", "book:create", "book:edit", "book:delete", "book:bulk",
		"author:manage", "library:manage", "library:stats",
	},
}

func seedPermissions(db *sql.DB) map[string]string {
	ids := make(map[string]string, len(permissions))
	for code, name := range permissions {
		var id string
		err := db.QueryRow(`
			INSERT INTO permissions (code, name) VALUES ($1, $2)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, code, name).Scan(&id)
		if err != nil {
			log.Fatalf("failed to upsert permission %s: %v", code, err)
		}
		ids[code] = id
	}
	fmt.Printf("permissions ensured: %d\n", len(ids))
	return ids
}

func seedGroups(db *sql.DB, permIDs map[string]string) map[string]string {
	ids := make(map[string]string, len(groupGrants))
	for name, grants := range groupGrants {
		var id string
		err := db.QueryRow(`
			INSERT INTO groups (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			log.Fatalf("failed to upsert group %s: %v", name, err)
		}
		ids[name] = id
		for _, code := range grants {
			if _, err := db.Exec(`
				INSERT INTO group_permissions (group_id, permission_id)
				VALUES ($1, $2)
				ON CONFLICT (group_id, permission_id) DO NOTHING
			`, id, permIDs[code]); err != nil {
				log.Fatalf("failed to grant %s to %s: %v", code, name, err)
			}
		}
	}
	fmt.Printf("groups ensured: %d\n", len(ids))
	return ids
}

var demoUsers = []struct {
	Email string
	Name  string
	Role  string
	Group string
}{
	{"admin@librarium.dev", "Demo Admin", "Admin", "Admins"},
	{"librarian@librarium.dev", "Demo Librarian", "Librarian", "Editors"},
	{"member@librarium.dev", "Demo Member", "Member", "Viewers"},
}

func seedUsers(db *sql.DB, groupIDs map[string]string) {
	const password = "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	for _, u := range demoUsers {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (email, password_hash, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, u.Email, hash, u.Name).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		if _, err := db.Exec(`
			INSERT INTO user_profiles (user_id, role)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
		`, id, u.Role); err != nil {
			log.Fatalf("failed to seed profile for %s: %v", u.Email, err)
		}
		if _, err := db.Exec(`
			INSERT INTO user_groups (user_id, group_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, group_id) DO NOTHING
		`, id, groupIDs[u.Group]); err != nil {
			log.Fatalf("failed to assign group for %s: %v", u.Email, err)
		}
		fmt.Printf("seeded user: email=%s role=%s password=%s\n", u.Email, u.Role, password)
	}
}

var sampleBooks = []struct {
	Author string
	Title  string
	Year   int
}{
	{"Ursula K. Le Guin", "The Dispossessed", 1974},
	{"Ursula K. Le Guin", "The Left Hand of Darkness", 1969},
	{"N. K. Jemisin", "The Fifth Season", 2015},
	{"N. K. Jemisin", "The Stone Sky", 2017},
	{"Ted Chiang", "Exhalation", 2019},
}

func seedCatalog(db *sql.DB) []string {
	authorIDs := map[string]string{}
	bookIDs := make([]string, 0, len(sampleBooks))
	for _, b := range sampleBooks {
		aid, ok := authorIDs[b.Author]
		if !ok {
			if err := db.QueryRow(`
				INSERT INTO authors (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET updated_at = now()
				RETURNING id
			`, b.Author).Scan(&aid); err != nil {
				log.Fatalf("failed to seed author %s: %v", b.Author, err)
			}
			authorIDs[b.Author] = aid
		}
		var bid string
		if err := db.QueryRow(`
			INSERT INTO books (title, author_id, publication_year)
			VALUES ($1, $2, $3)
			ON CONFLICT (title, author_id) DO UPDATE SET publication_year = EXCLUDED.publication_year
			RETURNING id
		`, b.Title, aid, b.Year).Scan(&bid); err != nil {
			log.Fatalf("failed to seed book %s: %v", b.Title, err)
		}
		bookIDs = append(bookIDs, bid)
	}
	fmt.Printf("catalog ensured: %d authors, %d books\n", len(authorIDs), len(bookIDs))
	return bookIDs
}

func seedLibraries(db *sql.DB, bookIDs []string) {
	var libID string
	if err := db.QueryRow(`
		INSERT INTO libraries (name) VALUES ('Central Library')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&libID); err != nil {
		log.Fatalf("failed to seed library: %v", err)
	}
	for _, bid := range bookIDs {
		if _, err := db.Exec(`
			INSERT INTO library_books (library_id, book_id)
			VALUES ($1, $2)
			ON CONFLICT (library_id, book_id) DO NOTHING
		`, libID, bid); err != nil {
			log.Fatalf("failed to attach book: %v", err)
		}
	}
	if _, err := db.Exec(`
		INSERT INTO librarians (name, library_id)
		VALUES ('Demo Librarian', $1)
		ON CONFLICT (library_id) DO UPDATE SET name = EXCLUDED.name
	`, libID); err != nil {
		log.Fatalf("failed to seed librarian: %v", err)
	}
	fmt.Println("library ensured: Central Library")
}
