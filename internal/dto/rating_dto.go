package dto

type RateNoteRequest struct {
	Value int `json:"value" validate:"required,gte=1,lte=5"`
}

type RatingSummaryResponse struct {
	NoteId  uint    `json:"noteId,omitempty"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
	Stars   string  `json:"stars"`
	Label   string  `json:"label"`
}
