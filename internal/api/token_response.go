package api

// swagger:model api.TokenResponse
type TokenResponse struct {
	Token string `json:"token" example:"9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"`
}
