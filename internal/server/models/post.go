package models

import "time"

// Post is a single quote. CreatorID is the owner; only the owner may edit,
// flip visibility, or delete. Deleted posts stay in storage (soft delete)
// but never appear in listings or counts.
//
// CreatorID is a pointer because legacy rows created before ownership was
// enforced may carry NULL; the access policy treats those as unownable.
type Post struct {
	ID        int64
	Content   string
	AuthorID  int64
	Author    string
	SourceID  *int64
	Source    *string
	CreatorID *int64
	Private   bool
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorCount is one row of the author filter facet: an author plus how many
// posts of theirs the current viewer can see.
type AuthorCount struct {
	ID    int64
	Name  string
	Count int64
}

// SourceCount is one row of the source filter facet.
type SourceCount struct {
	ID    int64
	Title string
	Count int64
}
