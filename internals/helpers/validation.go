package helper

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"obehod_backend/internals/hodapi"
)

// FieldErrors maps a form field (json name) to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names are reported by their
// json tag and the "bloom" tag checks hodapi.BloomLevel.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("bloom", func(fl validator.FieldLevel) bool {
			return hodapi.BloomLevel(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// CheckForm validates form. messages maps "field" or "field.tag" to the
// text to show; unmapped failures get a generic message. Returns nil when
// the form is valid.
func CheckForm(form any, messages map[string]string) FieldErrors {
	err := Validator().Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{"_": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range ve {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		switch {
		case messages[field+"."+fe.Tag()] != "":
			out[field] = messages[field+"."+fe.Tag()]
		case messages[field] != "":
			out[field] = messages[field]
		default:
			out[field] = field + " is invalid (" + fe.Tag() + ")"
		}
	}
	return out
}
