package contract

import (
	"context"

	"studynotes-be/internal/entity"
)

type RatingRepository interface {
	// Create fails with ErrDuplicateRating when the rater already rated the note.
	Create(ctx context.Context, rating *entity.Rating) error
	FindByRaterAndNote(ctx context.Context, raterId string, noteId uint) (*entity.Rating, error)
	Aggregate(ctx context.Context, noteId uint) (count int64, total int64, err error)
}
