package dto

import "time"

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Class   string `json:"class" validate:"required,max=100"`
	Topic   string `json:"topic" validate:"required,max=100"`
	Year    int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest is a partial update; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Class   *string `json:"class" validate:"omitempty,min=1,max=100"`
	Topic   *string `json:"topic" validate:"omitempty,min=1,max=100"`
	Year    *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

func (r *UpdateNoteRequest) IsEmpty() bool {
	return r.Title == nil && r.Class == nil && r.Topic == nil && r.Year == nil && r.Content == nil
}

// NoteSearchRequest binds the /notes query string. Numeric parameters stay
// raw so a blank value (year=) reads as absent rather than zero.
type NoteSearchRequest struct {
	Title     string `query:"title"`
	Topic     string `query:"topic"`
	Class     string `query:"class"`
	Year      string `query:"year"`
	Author    string `query:"author"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      string `query:"page"`
	PageSize  string `query:"pageSize"`
}

type NoteResponse struct {
	Id         uint                  `json:"id"`
	AuthorId   string                `json:"authorId"`
	AuthorName string                `json:"authorName"`
	Title      string                `json:"title"`
	Class      string                `json:"class"`
	Topic      string                `json:"topic"`
	Year       int                   `json:"year"`
	Content    string                `json:"content"`
	Rating     RatingSummaryResponse `json:"rating"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

type NoteListResponse struct {
	Items    []*NoteResponse
	Total    int64
	Page     int
	PageSize int
}
