package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report json names so messages line up with request fields
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string)
	for _, fe := range verrs {
		if _, ok := errs[fe.Field()]; !ok {
			errs[fe.Field()] = fe.Tag()
		}
	}
	return errs
}

// Messages validates v and translates each failure through messages, keyed
// by "field.tag" or just "field". Unknown failures fall back to the tag.
func Messages(v interface{}, messages map[string]string) map[string]string {
	errs := Validate(v)
	for field, tag := range errs {
		if msg, ok := messages[field+"."+tag]; ok {
			errs[field] = msg
			continue
		}
		if msg, ok := messages[field]; ok {
			errs[field] = msg
		}
	}
	return errs
}
