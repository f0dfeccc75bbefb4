package auth

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

// Profile text bounds, counted in runes so Cyrillic names are measured the
// way users see them.
const (
	minTextLen = 2
	maxTextLen = 30
)

// Column widths of users.email and users.avatar, in characters.
const (
	maxEmailLen  = 255
	maxAvatarLen = 2048
)

// avatarPattern is the URL shape avatars must match. Scheme is optional.
var avatarPattern = regexp.MustCompile(`^(?:http(s)?:\/\/)?[\w.-]+(?:\.[\w.-]+)+[\w\-._~:/?#[\]@!$&'()*+,;=.]+$`)

// NormalizeEmail lower-cases and trims an email so lookups and the unique
// index agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a bare address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return apperror.NewValidation("email is required")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return apperror.NewValidation("email must be at most 255 characters")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return apperror.NewValidation("invalid email format")
	}
	return nil
}

// ValidateName checks the display name length bounds.
func ValidateName(name string) error {
	return validateText("name", name)
}

// ValidateAbout checks the bio length bounds.
func ValidateAbout(about string) error {
	return validateText("about", about)
}

// ValidateAvatar checks that the avatar is a URL-shaped string.
func ValidateAvatar(avatar string) error {
	if avatar == "" {
		return apperror.NewValidation("avatar is required")
	}
	if utf8.RuneCountInString(avatar) > maxAvatarLen {
		return apperror.NewValidation("avatar link must be at most 2048 characters")
	}
	if !avatarPattern.MatchString(avatar) {
		return apperror.NewValidation("invalid avatar link")
	}
	return nil
}

// ValidateProfile runs every field check on a user about to be written.
func ValidateProfile(u *User) error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if err := ValidateName(u.Name); err != nil {
		return err
	}
	if err := ValidateAbout(u.About); err != nil {
		return err
	}
	return ValidateAvatar(u.Avatar)
}

// applyDefaults fills profile fields the registrant left empty.
func applyDefaults(u *User) {
	if u.Name == "" {
		u.Name = DefaultName
	}
	if u.About == "" {
		u.About = DefaultAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}
}

func validateText(field, value string) error {
	n := utf8.RuneCountInString(value)
	if n < minTextLen || n > maxTextLen {
		return apperror.NewValidation(field + " must be between 2 and 30 characters")
	}
	return nil
}
