package memory

import (
	"context"
	"fmt"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/pkg/query"
)

type noteRepository struct {
	store *Store
}

func NewNoteRepository(store *Store) contract.NoteRepository {
	return &noteRepository{store: store}
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[note.AuthorId]; !ok {
		return fmt.Errorf("%w: author %s", ErrForeignKey, note.AuthorId)
	}

	s.nextNote++
	note.Id = s.nextNote
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}

	cp := *note
	cp.AuthorFirstName, cp.AuthorLastName = "", ""
	cp.RatingCount, cp.RatingTotal = 0, 0
	s.notes[note.Id] = &cp
	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.notes[note.Id]
	if !ok {
		return nil
	}
	current.Title = note.Title
	current.Class = note.Class
	current.Topic = note.Topic
	current.Year = note.Year
	current.Content = note.Content
	current.UpdatedAt = note.UpdatedAt
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, id)
	for key := range s.ratings {
		if key.noteId == id {
			delete(s.ratings, key)
		}
	}
	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*entity.Note, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return s.noteView(n, s.ratingAggregates()), nil
}

func (r *noteRepository) Search(ctx context.Context, c query.Criteria, policy query.Policy) (query.Page[*entity.Note], error) {
	if err := checkContext(ctx); err != nil {
		return query.Page[*entity.Note]{}, err
	}

	s := r.store
	s.mu.RLock()
	aggregates := s.ratingAggregates()
	views := make([]*entity.Note, 0, len(s.notes))
	for _, n := range s.notes {
		views = append(views, s.noteView(n, aggregates))
	}
	s.mu.RUnlock()

	return query.Apply(views, c, policy)
}

func (r *noteRepository) CountByAuthor(ctx context.Context, cwid string) (int64, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, n := range s.notes {
		if n.AuthorId == cwid {
			count++
		}
	}
	return count, nil
}
