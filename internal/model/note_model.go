package model

import "time"

type Note struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	AuthorId  string    `gorm:"type:varchar(8);not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	ClassCode string    `gorm:"column:class_code;type:varchar(100);not null"`
	Topic     string    `gorm:"type:varchar(100);not null"`
	Year      int       `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

// NoteRow is a note joined with its author's name and rating aggregates.
type NoteRow struct {
	Id              uint
	AuthorId        string
	Title           string
	ClassCode       string
	Topic           string
	Year            int
	Content         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AuthorFirstName string
	AuthorLastName  string
	RatingCount     int64
	RatingTotal     int64
}
