package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"filebox-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe

	maxDisplayNameLen = 64
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))
	name := strings.TrimSpace(r.DisplayName)

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8-72 characters"
	}

	if name != "" && utf8.RuneCountInString(name) > maxDisplayNameLen {
		errs["display_name"] = "display_name length must be at most 64 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen || l > maxPasswordLen {
		errs["password"] = "password length must be 8-72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateBulkDeleteIDs parses the raw id list, rejecting empties and
// non-UUID entries up front so the service sees only well-formed ids.
func ValidateBulkDeleteIDs(raw []string) ([]uuid.UUID, map[string]string) {
	if len(raw) == 0 {
		return nil, map[string]string{"file_ids": "file_ids must not be empty"}
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		ok, id := IsUUID(s)
		if !ok {
			return nil, map[string]string{"file_ids": "every file id must be a valid UUID"}
		}
		ids = append(ids, id)
	}

	return ids, nil
}
