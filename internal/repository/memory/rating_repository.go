package memory

import (
	"context"
	"fmt"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/contract"
)

type ratingRepository struct {
	store *Store
}

func NewRatingRepository(store *Store) contract.RatingRepository {
	return &ratingRepository{store: store}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rating.RaterId]; !ok {
		return fmt.Errorf("%w: rater %s", ErrForeignKey, rating.RaterId)
	}
	if _, ok := s.notes[rating.NoteId]; !ok {
		return fmt.Errorf("%w: note %d", ErrForeignKey, rating.NoteId)
	}

	key := ratingKey{raterId: rating.RaterId, noteId: rating.NoteId}
	if _, exists := s.ratings[key]; exists {
		return contract.ErrDuplicateRating
	}

	s.nextRating++
	rating.Id = s.nextRating
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}
	cp := *rating
	s.ratings[key] = &cp
	return nil
}

func (r *ratingRepository) FindByRaterAndNote(ctx context.Context, raterId string, noteId uint) (*entity.Rating, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.ratings[ratingKey{raterId: raterId, noteId: noteId}]
	if !ok {
		return nil, nil
	}
	cp := *existing
	return &cp, nil
}

func (r *ratingRepository) Aggregate(ctx context.Context, noteId uint) (int64, int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, 0, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count, total int64
	for key, rt := range s.ratings {
		if key.noteId == noteId {
			count++
			total += int64(rt.Value)
		}
	}
	return count, total, nil
}
