package handler

// messageResponse is the standard error envelope returned on all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// createUserRequest is the body for POST /api/users and /api/users/register.
// Any role field in the payload is ignored: the endpoint decides the role.
type createUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// updateUserRequest is the body for PUT /api/users/:id. The id in the URL
// always wins over any id in the body. The password is rehashed on every
// update, so it must always be resent.
type updateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=Administrator Client"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
