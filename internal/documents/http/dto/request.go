// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"
)

// ListDocumentsRequest carries the catalog filters parsed from query
// parameters. All fields are optional.
type ListDocumentsRequest struct {
	Text     string
	Category string
	Year     int
}

// Validate checks if the list request is valid.
func (r *ListDocumentsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text, validation.Length(0, 200)),
		validation.Field(&r.Category, validation.Length(0, 100)),
		validation.Field(&r.Year, validation.Min(0), validation.Max(time.Now().Year()+1)),
	)
}
