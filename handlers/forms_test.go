package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   RegisterForm
		fields []string
	}{
		{
			name: "valid",
			form: RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secretpass", ConfirmPassword: "secretpass"},
		},
		{
			name:   "username too short",
			form:   RegisterForm{Username: "a", Email: "alice@example.com", Password: "secretpass", ConfirmPassword: "secretpass"},
			fields: []string{"username"},
		},
		{
			name:   "username too long",
			form:   RegisterForm{Username: "abcdefghijklmnopqrstu", Email: "alice@example.com", Password: "secretpass", ConfirmPassword: "secretpass"},
			fields: []string{"username"},
		},
		{
			name:   "bad email",
			form:   RegisterForm{Username: "alice", Email: "nope", Password: "secretpass", ConfirmPassword: "secretpass"},
			fields: []string{"email"},
		},
		{
			name:   "password too short and mismatched",
			form:   RegisterForm{Username: "alice", Email: "alice@example.com", Password: "short", ConfirmPassword: "other"},
			fields: []string{"password", "confirm_password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Len(t, errs, len(tt.fields))
			for _, field := range tt.fields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestPostFormValidateTrimsWhitespace(t *testing.T) {
	form := PostForm{Title: "   ", Content: "\n\t"}
	errs := form.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "content")

	form = PostForm{Title: "  padded  ", Content: "body"}
	assert.Empty(t, form.Validate())
	assert.Equal(t, "padded", form.Title)
}

func TestResetQueryFormValidate(t *testing.T) {
	assert.Empty(t, (&ResetQueryForm{Email: "alice@example.com"}).Validate())
	assert.Contains(t, (&ResetQueryForm{Email: ""}).Validate(), "email")
	assert.Contains(t, (&ResetQueryForm{Email: "Alice <alice@example.com>"}).Validate(), "email")
}
