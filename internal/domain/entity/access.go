package entity

import "time"

// Permission codes checked by handlers. Grants flow through groups,
// never directly to users.
const (
	PermBookView     = "book:view"
	PermBookViewAll  = "book:view_all"
	PermBookCreate   = "book:create"
	PermBookEdit     = "book:edit"
	PermBookDelete   = "book:delete"
	PermBookBulk     = "book:bulk"
	PermAuthorManage = "author:manage"
	PermLibManage    = "library:manage"
	PermLibStats     = "library:stats"
)

// Built-in group names seeded at install time.
const (
	GroupViewers = "Viewers"
	GroupEditors = "Editors"
	GroupAdmins  = "Admins"
)

type Permission struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Group is a named bundle of permissions. Users belong to any number
// of groups via user_groups.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
