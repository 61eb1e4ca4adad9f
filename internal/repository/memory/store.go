package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/contract"
)

var ErrForeignKey = contract.ErrMissingReference

type ratingKey struct {
	raterId string
	noteId  uint
}

// Store keeps users, notes and ratings in process memory and enforces the
// same uniqueness and reference rules as the Postgres schema.
type Store struct {
	mu sync.RWMutex

	users  map[string]*entity.User
	emails map[string]string

	notes    map[uint]*entity.Note
	nextNote uint

	ratings    map[ratingKey]*entity.Rating
	nextRating uint
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*entity.User),
		emails:  make(map[string]string),
		notes:   make(map[uint]*entity.Note),
		ratings: make(map[ratingKey]*entity.Rating),
	}
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
		}
		return err
	}
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// noteView copies a note and fills its read-side projections. Caller holds mu.
func (s *Store) noteView(n *entity.Note, aggregates map[uint][2]int64) *entity.Note {
	cp := *n
	if author, ok := s.users[n.AuthorId]; ok {
		cp.AuthorFirstName = author.FirstName
		cp.AuthorLastName = author.LastName
	}
	agg := aggregates[n.Id]
	cp.RatingCount, cp.RatingTotal = agg[0], agg[1]
	return &cp
}

// ratingAggregates returns count and sum per note. Caller holds mu.
func (s *Store) ratingAggregates() map[uint][2]int64 {
	out := make(map[uint][2]int64)
	for _, r := range s.ratings {
		agg := out[r.NoteId]
		agg[0]++
		agg[1] += int64(r.Value)
		out[r.NoteId] = agg
	}
	return out
}
