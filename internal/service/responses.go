package service

import (
	"studynotes-be/internal/dto"
	"studynotes-be/internal/entity"
	"studynotes-be/pkg/query"
	"studynotes-be/pkg/rating"
)

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		CWID:      u.CWID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toRatingSummary(noteId uint, count, total int64) dto.RatingSummaryResponse {
	s := rating.Summarize(count, total)
	return dto.RatingSummaryResponse{
		NoteId:  noteId,
		Average: s.Average,
		Count:   s.Count,
		Stars:   s.Stars.String(),
		Label:   s.Label,
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	summary := toRatingSummary(0, n.RatingCount, n.RatingTotal)
	return &dto.NoteResponse{
		Id:         n.Id,
		AuthorId:   n.AuthorId,
		AuthorName: n.AuthorName(),
		Title:      n.Title,
		Class:      n.Class,
		Topic:      n.Topic,
		Year:       n.Year,
		Content:    n.Content,
		Rating:     summary,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func toNoteList(page query.Page[*entity.Note]) *dto.NoteListResponse {
	items := make([]*dto.NoteResponse, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, toNoteResponse(n))
	}
	return &dto.NoteListResponse{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}
