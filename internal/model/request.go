package model

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// Empty reports whether the update carries no fields at all.
func (r UpdateProfileRequest) Empty() bool {
	return r.Username == "" && r.Email == "" && r.Password == ""
}

type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required,min=3,max=100"`
	Content string   `json:"content" validate:"required,min=10"`
	Tags    []string `json:"tags" validate:"omitempty,dive,min=1"`
}

type UpdateBlogRequest struct {
	Title   string   `json:"title" validate:"omitempty,min=3,max=100"`
	Content string   `json:"content" validate:"omitempty,min=10"`
	Tags    []string `json:"tags" validate:"omitempty,dive,min=1"`
}

func (r UpdateBlogRequest) Empty() bool {
	return r.Title == "" && r.Content == "" && r.Tags == nil
}
