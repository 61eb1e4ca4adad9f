package specification

import "gorm.io/gorm"

type RatingForNote struct {
	NoteID uint
}

func (s RatingForNote) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ratings.note_id = ?", s.NoteID)
}

type RatingByRater struct {
	RaterID string
}

func (s RatingByRater) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ratings.rater_id = ?", s.RaterID)
}
