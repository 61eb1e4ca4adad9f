package entity

import "time"

type Rating struct {
	Id        uint
	RaterId   string
	NoteId    uint
	Value     int
	CreatedAt time.Time
}
