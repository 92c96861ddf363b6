package handler

type updateProfileRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Fullname *string `json:"fullname" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}
