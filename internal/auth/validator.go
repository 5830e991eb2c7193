package auth

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var errPasswordTooLong = errors.New("must be at most 72 bytes")

func maxPasswordBytes(value interface{}) error {
	if s, ok := value.(string); ok && len(s) > MaxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}

// Credentials carries an email/password pair for a single request.
type Credentials struct {
	Email    string
	Password string
}

// RegisterAdminInput is the raw input of an admin registration.
type RegisterAdminInput struct {
	Credentials
	Authorization string
}

// Validate checks that both fields are present and the email is well formed.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required, validation.By(maxPasswordBytes)),
	)
}

// Validate additionally requires the authorization value.
func (r RegisterAdminInput) Validate() error {
	if err := r.Credentials.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Authorization, validation.Required),
	)
}

// ValidateCredentials is the verdict for login and user registration input.
func ValidateCredentials(email, password string) error {
	return Credentials{Email: email, Password: password}.Validate()
}

// ValidateRegisterAdmin is the verdict for admin registration input.
func ValidateRegisterAdmin(email, password, authorization string) error {
	return RegisterAdminInput{
		Credentials:   Credentials{Email: email, Password: password},
		Authorization: authorization,
	}.Validate()
}
