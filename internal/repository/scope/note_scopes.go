package scope

import "gorm.io/gorm"

const noteDetailColumns = `notes.id, notes.author_id, notes.title, notes.class_code, notes.topic, notes.year,
	notes.content, notes.created_at, notes.updated_at,
	users.first_name AS author_first_name, users.last_name AS author_last_name,
	COALESCE(agg.rating_count, 0) AS rating_count, COALESCE(agg.rating_total, 0) AS rating_total`

const ratingAggregateJoin = `LEFT JOIN (
	SELECT note_id, COUNT(*) AS rating_count, SUM(value) AS rating_total
	FROM ratings GROUP BY note_id
) AS agg ON agg.note_id = notes.id`

// WithAuthor joins the author row. Every note has one because of the FK.
func WithAuthor(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN users ON users.cwid = notes.author_id")
}

// NoteDetails selects a model.NoteRow projection: author names and rating aggregates.
func NoteDetails(db *gorm.DB) *gorm.DB {
	return db.Table("notes").
		Select(noteDetailColumns).
		Scopes(WithAuthor).
		Joins(ratingAggregateJoin)
}
