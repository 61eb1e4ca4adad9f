package mapper

import (
	"studynotes-be/internal/entity"
	"studynotes-be/internal/model"
)

type RatingMapper struct{}

func NewRatingMapper() *RatingMapper {
	return &RatingMapper{}
}

func (m *RatingMapper) ToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		Id:        r.Id,
		RaterId:   r.RaterId,
		NoteId:    r.NoteId,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
	}
}

func (m *RatingMapper) ToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
		Id:        r.Id,
		RaterId:   r.RaterId,
		NoteId:    r.NoteId,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
	}
}
