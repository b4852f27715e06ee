package registration

import "strings"

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

var registerMessages = map[string]string{
	"username.required": "Username is required",
	"username.min":      "Username must be at least 3 characters",
	"email.required":    "Email is required",
	"email.email":       "Please enter a valid email address",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters",
}

// normalize trims the fields that are checked after trimming.
// Password is sent as typed.
func (r *RegisterRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// RegisterResponse is what the upstream echoed back, minus the password.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
