package envelope

import (
	"errors"
	"net/http"

	"bookstore/pkg/apierr"
	"bookstore/pkg/schema"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Code        int                 `json:"code"`
	Data        any                 `json:"data,omitempty"`
	ErrorText   string              `json:"errorText,omitempty"`
	ErrorFields []schema.FieldError `json:"errorFields,omitempty"`
}

// Wrap builds the envelope from the full handler outcome. It is a pure
// function: no state is carried between calls.
func Wrap(data any, err error) Envelope {
	if err == nil {
		return Envelope{Code: http.StatusOK, Data: data}
	}

	var validation *schema.ValidationError
	if errors.As(err, &validation) {
		return Envelope{Code: http.StatusUnprocessableEntity, ErrorFields: validation.Fields}
	}

	var domain *apierr.Error
	if errors.As(err, &domain) {
		return Envelope{Code: domain.Code, ErrorText: domain.Text}
	}

	// Unclassified errors never leak internal detail.
	return Envelope{Code: http.StatusInternalServerError, ErrorText: "internal error"}
}
