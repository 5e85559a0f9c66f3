package handlers

import (
	"net/mail"
	"strings"
)

// Form structs mirror the submitted fields one-to-one. Validate returns a
// field -> message map; an empty map means the form passed.

type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *RegisterForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	if l := len(f.Username); l < 2 || l > 20 {
		errs["username"] = "Username must be between 2 and 20 characters"
	}
	if !validEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}
	if l := len(f.Password); l < 6 || l > 30 {
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "Passwords must match"
	}

	return errs
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember bool   `form:"remember"`
	Next     string `form:"next"`
}

func (f *LoginForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Email = strings.TrimSpace(f.Email)

	if !validEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}
	if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}

	return errs
}

type PostForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func (f *PostForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Title = strings.TrimSpace(f.Title)

	if f.Title == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(f.Content) == "" {
		errs["content"] = "Content is required"
	}

	return errs
}

type ProfileForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
}

func (f *ProfileForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	if l := len(f.Username); l < 2 || l > 20 {
		errs["username"] = "Username must be between 2 and 20 characters"
	}
	if !validEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}

	return errs
}

type ResetQueryForm struct {
	Email string `form:"email"`
}

func (f *ResetQueryForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Email = strings.TrimSpace(f.Email)

	if !validEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}

	return errs
}

type PasswordUpdateForm struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *PasswordUpdateForm) Validate() map[string]string {
	errs := make(map[string]string)

	if l := len(f.Password); l < 6 || l > 30 {
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "Passwords must match"
	}

	return errs
}

func validEmail(address string) bool {
	if address == "" {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}
