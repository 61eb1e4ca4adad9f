package implementation

import (
	"context"
	"errors"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/mapper"
	"studynotes-be/internal/model"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/scope"
	"studynotes-be/internal/repository/specification"
	"studynotes-be/pkg/query"

	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	baseRepository
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB, timeout time.Duration) contract.NoteRepository {
	return &NoteRepositoryImpl{
		baseRepository: baseRepository{db: db, timeout: timeout},
		mapper:         mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	db, cancel := r.session(ctx)
	defer cancel()

	m := r.mapper.ToModel(note)
	if err := db.Create(m).Error; err != nil {
		return translateError(err)
	}
	note.Id = m.Id
	note.CreatedAt = m.CreatedAt
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	db, cancel := r.session(ctx)
	defer cancel()

	err := db.Model(&model.Note{}).
		Where("id = ?", note.Id).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"class_code": note.Class,
			"topic":      note.Topic,
			"year":       note.Year,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		}).Error
	return translateError(err)
}

// Delete removes the note; its ratings go with it through ON DELETE CASCADE.
func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, cancel := r.session(ctx)
	defer cancel()

	return translateError(db.Where("id = ?", id).Delete(&model.Note{}).Error)
}

func (r *NoteRepositoryImpl) FindByID(ctx context.Context, id uint) (*entity.Note, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var row model.NoteRow
	err := specification.ByNoteID{ID: id}.Apply(db.Scopes(scope.NoteDetails)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translateError(err)
	}
	return r.mapper.RowToEntity(&row), nil
}

func (r *NoteRepositoryImpl) Search(ctx context.Context, c query.Criteria, policy query.Policy) (query.Page[*entity.Note], error) {
	page := query.Page[*entity.Note]{Page: c.Page, PageSize: c.PageSize, Items: []*entity.Note{}}
	if err := c.Validate(); err != nil {
		return page, err
	}

	db, cancel := r.session(ctx)
	defer cancel()

	filters := specification.NoteFilters(c)

	countQuery := specification.ApplyAll(db.Model(&model.Note{}).Scopes(scope.WithAuthor), filters...)
	if err := countQuery.Count(&page.Total).Error; err != nil {
		return page, translateError(err)
	}
	if page.Total <= int64(c.Offset()) {
		return page, nil
	}

	specs := append(filters, specification.NoteOrdering(c, policy)...)
	specs = append(specs, specification.Pagination{Limit: c.PageSize, Offset: c.Offset()})

	var rows []*model.NoteRow
	if err := specification.ApplyAll(db.Scopes(scope.NoteDetails), specs...).Scan(&rows).Error; err != nil {
		return page, translateError(err)
	}

	page.Items = r.mapper.RowsToEntities(rows)
	return page, nil
}

func (r *NoteRepositoryImpl) CountByAuthor(ctx context.Context, cwid string) (int64, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var count int64
	err := specification.NoteOwnedBy{AuthorID: cwid}.Apply(db.Model(&model.Note{})).Count(&count).Error
	return count, translateError(err)
}
