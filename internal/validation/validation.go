// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DueDateLayouts are the accepted due_date formats.
var DueDateLayouts = []string{time.RFC3339, time.DateOnly, time.DateTime, "2006-01-02 15:04"}

var (
	instance *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator.
//
// Field names in errors come from the json, query or param tag (in that
// order), so messages name fields the way clients send them.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "query", "param"} {
				name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation("duedate", isDueDate)

		instance = v
	})

	return instance
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

func isDueDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, layout := range DueDateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
