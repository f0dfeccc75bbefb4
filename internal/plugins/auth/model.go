// Package auth handles user registration, login, password security and the
// bearer-token gate for the Mesto API. Sessions are stateless: a signed JWT
// carries the user ID and nothing is stored server-side, so logout is the
// client discarding its token.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

// Profile defaults applied when a registration omits the field.
const (
	DefaultName   = "Жак-Ив Кусто"
	DefaultAbout  = "Исследователь"
	DefaultAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered principal. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	About        string `json:"about"`
	Avatar       string `json:"avatar"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON responses.
}

// Profile is the registration response body: the public fields of a new
// user without its ID or password hash.
type Profile struct {
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// ProfileOf projects a user onto its public registration fields.
func ProfileOf(u *User) Profile {
	return Profile{
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the body of POST /signup.
type RegisterRequest struct {
	Name     string `json:"name"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds the body of POST /signin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful POST /signin.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating a new user. Empty profile fields
// receive their defaults.
type RegisterInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
