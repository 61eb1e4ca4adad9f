package entity

import (
	"strings"
	"time"
)

type Note struct {
	Id        uint
	AuthorId  string
	Title     string
	Class     string
	Topic     string
	Year      int
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Read-side projections, filled by the store on lookups and searches.
	AuthorFirstName string
	AuthorLastName  string
	RatingCount     int64
	RatingTotal     int64
}

func (n *Note) AuthorName() string {
	return strings.TrimSpace(n.AuthorFirstName + " " + n.AuthorLastName)
}

// IsOwnedBy reports whether cwid authored the note.
func (n *Note) IsOwnedBy(cwid string) bool {
	return n.AuthorId == cwid
}
