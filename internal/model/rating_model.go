package model

import "time"

type Rating struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	RaterId   string    `gorm:"type:varchar(8);not null;uniqueIndex:uq_ratings_rater_note,priority:1"`
	NoteId    uint      `gorm:"not null;index;uniqueIndex:uq_ratings_rater_note,priority:2"`
	Value     int       `gorm:"type:smallint;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}

// RatingAggregate is the count/sum pair used to derive averages exactly.
type RatingAggregate struct {
	Count int64
	Total int64
}
