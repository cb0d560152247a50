package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	// bcrypt only hashes the first 72 bytes, so longer passwords are rejected
	// up front instead of surfacing as a hashing error.
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Msg   string `json:"msg"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
