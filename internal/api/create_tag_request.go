package api

// swagger:model api.CreateTagRequest
type CreateTagRequest struct {
	Name string `json:"name" form:"name" validate:"required" example:"Vegan"`
}
