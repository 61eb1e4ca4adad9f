package dto

import "time"

type UserResponse struct {
	CWID      string    `json:"cwid"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// MeResponse is the caller's own account with their note count.
type MeResponse struct {
	UserResponse
	NotesCount int64 `json:"notesCount"`
}

// PublicProfileResponse omits the email address.
type PublicProfileResponse struct {
	CWID       string    `json:"cwid"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	FullName   string    `json:"fullName"`
	NotesCount int64     `json:"notesCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
}

func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil
}
