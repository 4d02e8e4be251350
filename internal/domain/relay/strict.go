package relay

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StrictJSON returns a Template.Validate func that decodes raw into T and applies its validate tags.
func StrictJSON[T any]() func([]byte) error {
	return func(raw []byte) error {
		var plan T
		if err := json.Unmarshal(raw, &plan); err != nil {
			return fmt.Errorf("decode plan: %w", err)
		}
		if err := structValidator.Struct(plan); err != nil {
			return formatValidation(err)
		}
		return nil
	}
}

func formatValidation(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	first := errs[0]
	// Namespace starts with the Go type name; drop it so paths read like the JSON document.
	path := first.Namespace()
	if idx := strings.IndexByte(path, '.'); idx >= 0 {
		path = path[idx+1:]
	}
	return fmt.Errorf("%s failed %q check (%d violation(s))", path, first.Tag(), len(errs))
}
