package main

type signupRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255" sanitize:"trim,lower"`
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100" sanitize:"strip_html,collapse_space,trim"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" sanitize:"trim,lower"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r loginRequest) GetUsername() string { return r.Email }
func (r loginRequest) GetPassword() string { return r.Password }

// profileRequest is a partial update; a nil Bio leaves the bio unchanged.
type profileRequest struct {
	Name string  `json:"name" form:"name" validate:"omitempty,min=2,max=100" sanitize:"strip_html,collapse_space,trim"`
	Bio  *string `json:"bio" form:"bio" validate:"omitempty,max=2000" sanitize:"trim"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required" sanitize:"trim"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
