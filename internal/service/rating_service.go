package service

import (
	"context"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/events"
	"studynotes-be/pkg/rating"
)

type IRatingService interface {
	Rate(ctx context.Context, cwid string, noteId uint, req *dto.RateNoteRequest) (*dto.RatingSummaryResponse, error)
	Summary(ctx context.Context, noteId uint) (*dto.RatingSummaryResponse, error)
}

type ratingService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewRatingService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) IRatingService {
	return &ratingService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Rate records a single 1-5 rating. Authors cannot rate their own notes and
// each user rates a note at most once; the store's unique index settles races.
func (s *ratingService) Rate(ctx context.Context, cwid string, noteId uint, req *dto.RateNoteRequest) (*dto.RatingSummaryResponse, error) {
	if !rating.ValidValue(req.Value) {
		return nil, apperror.Validation("value must be between 1 and 5")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindByID(ctx, noteId)
	if err != nil {
		return nil, storeError(err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}
	if note.IsOwnedBy(cwid) {
		return nil, errOwnNote
	}

	existing, err := uow.RatingRepository().FindByRaterAndNote(ctx, cwid, noteId)
	if err != nil {
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, errAlreadyRated
	}

	r := &entity.Rating{
		RaterId:   cwid,
		NoteId:    noteId,
		Value:     req.Value,
		CreatedAt: now(),
	}
	if err := uow.RatingRepository().Create(ctx, r); err != nil {
		return nil, storeError(err)
	}

	count, total, err := uow.RatingRepository().Aggregate(ctx, noteId)
	if err != nil {
		return nil, storeError(err)
	}

	s.publisher.Publish(ctx, events.New(events.NoteRated, map[string]interface{}{
		"noteId":  noteId,
		"raterId": cwid,
		"value":   req.Value,
	}))

	res := toRatingSummary(noteId, count, total)
	return &res, nil
}

func (s *ratingService) Summary(ctx context.Context, noteId uint) (*dto.RatingSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindByID(ctx, noteId)
	if err != nil {
		return nil, storeError(err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}

	res := toRatingSummary(noteId, note.RatingCount, note.RatingTotal)
	return &res, nil
}
