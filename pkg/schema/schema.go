package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// Length limits mirror the column widths in pkg/models.
const (
	MaxNameLen    = 60
	MaxAddressLen = 200
	MaxRows       = 100

	DateLayout = "2006-01-02"
)

const (
	msgRequired   = "Missing data for required field."
	msgNotInteger = "Not a valid integer."
	msgNotDate    = "Not a valid date."
	msgEmptyList  = "Shorter than minimum length 1."
	msgBadBody    = "Invalid request."
)

func msgTooLong(max int) string {
	return fmt.Sprintf("Longer than maximum length %d.", max)
}

func msgRange(min, max int) string {
	return fmt.Sprintf("Must be greater than or equal to %d and less than or equal to %d.", min, max)
}

func msgMin(min int) string {
	return fmt.Sprintf("Must be greater than or equal to %d.", min)
}

type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{f.Field: f.Message})
}

// ValidationError holds field errors in schema declaration order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// InvalidBody covers payloads that do not even decode into the target schema.
func InvalidBody() *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: "json", Message: msgBadBody}}}
}

// NotAnInteger covers path and query parameters that fail integer parsing.
func NotAnInteger(field string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msgNotInteger}}}
}

func checkString(fields []FieldError, name string, value *string, maxLen int) []FieldError {
	if value == nil {
		return append(fields, FieldError{Field: name, Message: msgRequired})
	}
	if utf8.RuneCountInString(*value) > maxLen {
		return append(fields, FieldError{Field: name, Message: msgTooLong(maxLen)})
	}
	return fields
}

type AddUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

func (r *AddUserRequest) Validate() error {
	var fields []FieldError
	fields = checkString(fields, "first_name", r.FirstName, MaxNameLen)
	fields = checkString(fields, "last_name", r.LastName, MaxNameLen)
	fields = checkString(fields, "email", r.Email, MaxNameLen)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type AddBookRequest struct {
	Name        *string `json:"name"`
	Author      *string `json:"author"`
	ReleaseDate *string `json:"release_date"`

	released time.Time
}

func (r *AddBookRequest) Validate() error {
	var fields []FieldError
	fields = checkString(fields, "name", r.Name, MaxNameLen)
	fields = checkString(fields, "author", r.Author, MaxNameLen)
	if r.ReleaseDate == nil {
		fields = append(fields, FieldError{Field: "release_date", Message: msgRequired})
	} else {
		parsed, err := time.Parse(DateLayout, *r.ReleaseDate)
		if err != nil {
			fields = append(fields, FieldError{Field: "release_date", Message: msgNotDate})
		} else {
			r.released = parsed
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Released returns the parsed release date; valid only after Validate succeeded.
func (r *AddBookRequest) Released() time.Time {
	return r.released
}

type AddShopRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

func (r *AddShopRequest) Validate() error {
	var fields []FieldError
	fields = checkString(fields, "name", r.Name, MaxNameLen)
	fields = checkString(fields, "address", r.Address, MaxAddressLen)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type AddOrderItem struct {
	BookID       *uint `json:"book_id"`
	ShopID       *uint `json:"shop_id"`
	BookQuantity *int  `json:"book_quantity"`
}

type AddOrderRequest struct {
	OrderItems []AddOrderItem `json:"order_items"`
}

func (r *AddOrderRequest) Validate() error {
	var fields []FieldError
	if r.OrderItems == nil {
		fields = append(fields, FieldError{Field: "order_items", Message: msgRequired})
	} else if len(r.OrderItems) == 0 {
		fields = append(fields, FieldError{Field: "order_items", Message: msgEmptyList})
	}
	for i, item := range r.OrderItems {
		prefix := fmt.Sprintf("order_items.%d.", i)
		if item.BookID == nil {
			fields = append(fields, FieldError{Field: prefix + "book_id", Message: msgRequired})
		}
		if item.ShopID == nil {
			fields = append(fields, FieldError{Field: prefix + "shop_id", Message: msgRequired})
		}
		if item.BookQuantity == nil {
			fields = append(fields, FieldError{Field: prefix + "book_quantity", Message: msgRequired})
		} else if *item.BookQuantity < 1 {
			fields = append(fields, FieldError{Field: prefix + "book_quantity", Message: msgMin(1)})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type LimitOffset struct {
	Limit  int
	Offset int
}

// ParseLimitOffset validates the pagination query parameters. Out of range
// values are rejected, not clamped.
func ParseLimitOffset(limitStr, offsetStr string) (LimitOffset, error) {
	lo := LimitOffset{Limit: MaxRows, Offset: 0}
	var fields []FieldError

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		switch {
		case err != nil:
			fields = append(fields, FieldError{Field: "limit", Message: msgNotInteger})
		case limit < 1 || limit > MaxRows:
			fields = append(fields, FieldError{Field: "limit", Message: msgRange(1, MaxRows)})
		default:
			lo.Limit = limit
		}
	}

	if offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		switch {
		case err != nil:
			fields = append(fields, FieldError{Field: "offset", Message: msgNotInteger})
		case offset < 0:
			fields = append(fields, FieldError{Field: "offset", Message: msgMin(0)})
		default:
			lo.Offset = offset
		}
	}

	if len(fields) > 0 {
		return lo, &ValidationError{Fields: fields}
	}
	return lo, nil
}
