package specification

import (
	"studynotes-be/pkg/query"

	"gorm.io/gorm"
)

type ByNoteID struct {
	ID uint
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.id = ?", s.ID)
}

type NoteOwnedBy struct {
	AuthorID string
}

func (s NoteOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.author_id = ?", s.AuthorID)
}

type NoteTitleContains struct {
	Title string
}

func (s NoteTitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.title ILIKE ?", containsPattern(s.Title))
}

type NoteTopicEquals struct {
	Topic string
}

func (s NoteTopicEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(notes.topic) = LOWER(?)", s.Topic)
}

type NoteClassEquals struct {
	Class string
}

func (s NoteClassEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(notes.class_code) = LOWER(?)", s.Class)
}

type NoteYearEquals struct {
	Year int
}

func (s NoteYearEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.year = ?", s.Year)
}

// NoteAuthorNameContains matches "first last". Requires the users join.
type NoteAuthorNameContains struct {
	Name string
}

func (s NoteAuthorNameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("(users.first_name || ' ' || users.last_name) ILIKE ?", containsPattern(s.Name))
}

// NoteFilters translates search criteria into WHERE specifications.
func NoteFilters(c query.Criteria) []Specification {
	var specs []Specification
	if c.Title != "" {
		specs = append(specs, NoteTitleContains{Title: c.Title})
	}
	if c.Topic != "" {
		specs = append(specs, NoteTopicEquals{Topic: c.Topic})
	}
	if c.Class != "" {
		specs = append(specs, NoteClassEquals{Class: c.Class})
	}
	if c.Year != nil {
		specs = append(specs, NoteYearEquals{Year: *c.Year})
	}
	if c.Author != "" {
		specs = append(specs, NoteAuthorNameContains{Name: c.Author})
	}
	if c.AuthorID != "" {
		specs = append(specs, NoteOwnedBy{AuthorID: c.AuthorID})
	}
	return specs
}

// NoteOrdering mirrors query.Comparator so both stores return identical orders.
// Title ordering uses the C collation to compare bytes like the in-memory engine.
func NoteOrdering(c query.Criteria, policy query.Policy) []Specification {
	if policy == query.PolicyPopularity {
		return []Specification{
			OrderBy{Field: "rating_count", Desc: true},
			OrderBy{Field: "rating_total", Desc: true},
			OrderBy{Field: "notes.created_at", Desc: true},
			OrderBy{Field: "notes.id", Desc: true},
		}
	}

	field, desc := c.Sort()
	column := "notes.created_at"
	if field == query.SortByTitle {
		column = `LOWER(notes.title) COLLATE "C"`
	}
	return []Specification{
		OrderBy{Field: column, Desc: desc},
		OrderBy{Field: "notes.id", Desc: desc},
	}
}
