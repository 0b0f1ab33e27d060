package request

// UpdateProfileRequest replaces the caller's full name. Phone is changed only
// when present and non-empty.
type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
}
