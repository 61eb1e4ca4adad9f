package mapper

import (
	"studynotes-be/internal/entity"
	"studynotes-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.Id,
		AuthorId:  n.AuthorId,
		Title:     n.Title,
		Class:     n.ClassCode,
		Topic:     n.Topic,
		Year:      n.Year,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		AuthorId:  n.AuthorId,
		Title:     n.Title,
		ClassCode: n.Class,
		Topic:     n.Topic,
		Year:      n.Year,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) RowToEntity(r *model.NoteRow) *entity.Note {
	if r == nil {
		return nil
	}
	return &entity.Note{
		Id:              r.Id,
		AuthorId:        r.AuthorId,
		Title:           r.Title,
		Class:           r.ClassCode,
		Topic:           r.Topic,
		Year:            r.Year,
		Content:         r.Content,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		AuthorFirstName: r.AuthorFirstName,
		AuthorLastName:  r.AuthorLastName,
		RatingCount:     r.RatingCount,
		RatingTotal:     r.RatingTotal,
	}
}

func (m *NoteMapper) RowsToEntities(rows []*model.NoteRow) []*entity.Note {
	notes := make([]*entity.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, m.RowToEntity(r))
	}
	return notes
}
