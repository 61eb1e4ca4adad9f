package contract

import (
	"context"

	"studynotes-be/internal/entity"
	"studynotes-be/pkg/query"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uint) error
	// FindByID returns the note with author name and rating aggregates, or (nil, nil).
	FindByID(ctx context.Context, id uint) (*entity.Note, error)
	Search(ctx context.Context, criteria query.Criteria, policy query.Policy) (query.Page[*entity.Note], error)
	CountByAuthor(ctx context.Context, cwid string) (int64, error)
}
