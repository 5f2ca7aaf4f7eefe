package api

// UpdateMeRequest carries a partial profile update; nil fields are
// left untouched.
// swagger:model api.UpdateMeRequest
type UpdateMeRequest struct {
	Name     *string `json:"name,omitempty" form:"name" example:"Alice"`
	Email    *string `json:"email,omitempty" form:"email" validate:"omitempty,email" example:"alice@example.com"`
	Password *string `json:"password,omitempty" form:"password" validate:"omitempty,min=5" example:"NewSecret456!"`
}
