// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// LoginRequest contains the credentials exchanged for a bearer token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate checks if the login request is valid. Only shape is validated
// here; credential checking happens in the use case.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, validation.Length(5, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}
