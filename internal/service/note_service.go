// FILE: internal/service/note_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/events"
	"studynotes-be/pkg/query"
)

type INoteService interface {
	List(ctx context.Context, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error)
	Popular(ctx context.Context, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error)
	ListByAuthor(ctx context.Context, authorId string, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error)
	Show(ctx context.Context, id uint) (*dto.NoteResponse, error)
	Create(ctx context.Context, cwid string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, cwid string, id uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, cwid string, id uint) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func criteriaFrom(req *dto.NoteSearchRequest) (query.Criteria, error) {
	c := query.NewCriteria()
	if req != nil {
		c.Title = strings.TrimSpace(req.Title)
		c.Topic = strings.TrimSpace(req.Topic)
		c.Class = strings.TrimSpace(req.Class)
		c.Author = strings.TrimSpace(req.Author)
		c.SortBy = req.SortBy
		c.SortOrder = req.SortOrder

		year, err := optionalInt("year", req.Year)
		if err != nil {
			return c, err
		}
		c.Year = year

		if page, err := optionalInt("page", req.Page); err != nil {
			return c, err
		} else if page != nil {
			c.Page = *page
		}
		if size, err := optionalInt("pageSize", req.PageSize); err != nil {
			return c, err
		} else if size != nil {
			c.PageSize = *size
		}
	}
	if err := c.Validate(); err != nil {
		return c, apperror.Validation(err.Error())
	}
	return c, nil
}

// optionalInt parses a numeric query value. Blank means not supplied.
func optionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("%s must be a whole number", name))
	}
	return &n, nil
}

func (s *noteService) search(ctx context.Context, c query.Criteria, policy query.Policy) (*dto.NoteListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	page, err := uow.NoteRepository().Search(ctx, c, policy)
	if err != nil {
		return nil, storeError(err)
	}
	return toNoteList(page), nil
}

func (s *noteService) List(ctx context.Context, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error) {
	c, err := criteriaFrom(req)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, c, query.PolicySearch)
}

func (s *noteService) Popular(ctx context.Context, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error) {
	c, err := criteriaFrom(req)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, c, query.PolicyPopularity)
}

// ListByAuthor pages through one user's notes, newest first.
func (s *noteService) ListByAuthor(ctx context.Context, authorId string, req *dto.NoteSearchRequest) (*dto.NoteListResponse, error) {
	c, err := criteriaFrom(req)
	if err != nil {
		return nil, err
	}
	c.AuthorID = authorId
	c.SortBy = string(query.SortByCreatedAt)
	c.SortOrder = "desc"

	uow := s.uowFactory.NewUnitOfWork(ctx)
	author, err := uow.UserRepository().FindByCWID(ctx, authorId)
	if err != nil {
		return nil, storeError(err)
	}
	if author == nil {
		return nil, errUserNotFound
	}

	return s.search(ctx, c, query.PolicySearch)
}

func (s *noteService) Show(ctx context.Context, id uint) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Create(ctx context.Context, cwid string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	ts := now()
	note := &entity.Note{
		AuthorId:  cwid,
		Title:     strings.TrimSpace(req.Title),
		Class:     strings.TrimSpace(req.Class),
		Topic:     strings.TrimSpace(req.Topic),
		Year:      req.Year,
		Content:   req.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if note.Title == "" || note.Class == "" || note.Topic == "" || strings.TrimSpace(note.Content) == "" {
		return nil, errBlankField
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, storeError(err)
	}

	created, err := uow.NoteRepository().FindByID(ctx, note.Id)
	if err != nil {
		return nil, storeError(err)
	}
	if created == nil {
		return nil, errNoteNotFound
	}

	s.publisher.Publish(ctx, events.New(events.NoteCreated, map[string]interface{}{
		"noteId":   created.Id,
		"authorId": created.AuthorId,
		"title":    created.Title,
	}))

	return toNoteResponse(created), nil
}

// Update applies only the supplied fields. Ownership is checked inside the
// transaction that writes the change.
func (s *noteService) Update(ctx context.Context, cwid string, id uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if req.IsEmpty() {
		return nil, errEmptyUpdate
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError(err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if note == nil {
		return nil, errNoteNotFound
	}
	if !note.IsOwnedBy(cwid) {
		return nil, errNotNoteOwner
	}

	if err := applyNoteUpdate(note, req); err != nil {
		return nil, err
	}
	note.UpdatedAt = now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, storeError(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, storeError(err)
	}

	s.publisher.Publish(ctx, events.New(events.NoteUpdated, map[string]interface{}{
		"noteId":   note.Id,
		"authorId": note.AuthorId,
	}))

	return toNoteResponse(note), nil
}

func applyNoteUpdate(note *entity.Note, req *dto.UpdateNoteRequest) error {
	trimmed := func(p *string) (string, bool) {
		v := strings.TrimSpace(*p)
		return v, v != ""
	}

	if req.Title != nil {
		v, ok := trimmed(req.Title)
		if !ok {
			return errBlankField
		}
		note.Title = v
	}
	if req.Class != nil {
		v, ok := trimmed(req.Class)
		if !ok {
			return errBlankField
		}
		note.Class = v
	}
	if req.Topic != nil {
		v, ok := trimmed(req.Topic)
		if !ok {
			return errBlankField
		}
		note.Topic = v
	}
	if req.Content != nil {
		if _, ok := trimmed(req.Content); !ok {
			return errBlankField
		}
		note.Content = *req.Content
	}
	if req.Year != nil {
		note.Year = *req.Year
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, cwid string, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return storeError(err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindByID(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if note == nil {
		return errNoteNotFound
	}
	if !note.IsOwnedBy(cwid) {
		return errNotNoteOwner
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return storeError(err)
	}
	if err := uow.Commit(); err != nil {
		return storeError(err)
	}

	s.publisher.Publish(ctx, events.New(events.NoteDeleted, map[string]interface{}{
		"noteId":   id,
		"authorId": cwid,
	}))
	return nil
}
