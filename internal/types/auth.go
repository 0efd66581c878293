// Package types provides the canonical models exchanged with the job-matching backend.
// Raw backend JSON is normalised into these shapes as soon as it is decoded.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names so errors read like the wire payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError reports the first field that failed request validation.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s failed on %q", e.Field, e.Tag)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag()}
	}
	return err
}

// LoginRequest is the body of users/login/.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of users/register/.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// ChangePasswordRequest is the body of users/change_password/.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// AuthResponse is returned by login and register. Token may be empty if the
// backend did not issue one.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ChangePasswordResponse carries the refreshed token issued after a password change.
type ChangePasswordResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// APIStatus is the payload of the API root endpoint.
type APIStatus struct {
	Message       string            `json:"message"`
	Authenticated bool              `json:"authenticated"`
	Endpoints     map[string]string `json:"endpoints,omitempty"`
}

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error {
	return validateStruct(r)
}

// Validate validates the RegisterRequest.
func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

// Validate validates the ChangePasswordRequest.
func (r *ChangePasswordRequest) Validate() error {
	return validateStruct(r)
}
