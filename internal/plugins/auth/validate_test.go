package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keyxmakerx/mesto/internal/apperror"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"first.last@example.co.uk", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"Bob <bob@example.com>", false},
		{"a@b.com, c@d.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateText_CountsRunes(t *testing.T) {
	assert.NoError(t, ValidateName("Жа"))
	assert.NoError(t, ValidateName(strings.Repeat("ж", 30)))
	assert.Error(t, ValidateName("Ж"))
	assert.Error(t, ValidateName(strings.Repeat("ж", 31)))
	assert.NoError(t, ValidateAbout(DefaultAbout))
	assert.Error(t, ValidateAbout(""))
}

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		avatar string
		valid  bool
	}{
		{DefaultAvatar, true},
		{"http://example.com/a.png", true},
		{"example.com/avatar.jpg", true},
		{"", false},
		{"not a url", false},
		{"javascript:alert(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.avatar, func(t *testing.T) {
			err := ValidateAvatar(tt.avatar)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	u := &User{Name: "Alice"}
	applyDefaults(u)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, DefaultAbout, u.About)
	assert.Equal(t, DefaultAvatar, u.Avatar)
	assert.NoError(t, ValidateProfile(&User{
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  "a@b.com",
	}))
}

func TestValidate_ColumnWidths(t *testing.T) {
	local := strings.Repeat("a", 64)
	domain := strings.Repeat("b", maxEmailLen-len(local)-len("@.com")) + ".com"
	assert.NoError(t, ValidateEmail(local+"@"+domain))
	assert.True(t, apperror.Is(ValidateEmail(local+"@b"+domain), apperror.TypeValidation))

	base := "https://example.com/"
	assert.NoError(t, ValidateAvatar(base+strings.Repeat("a", maxAvatarLen-len(base))))
	assert.True(t, apperror.Is(ValidateAvatar(base+strings.Repeat("a", maxAvatarLen)), apperror.TypeValidation))
}
