// Package bind provides JSON bind and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "shopsense/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// JSONOptions controls parsing behavior
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
		AllowEmptyBody:  false,
	}
}

// ParseJSON decodes JSON into T, validates it, and maps failures to project errors
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	body := http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var in T
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) && o.AllowEmptyBody {
			return in, nil
		}
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "invalid json body")
	}
	// exactly one JSON document
	if dec.More() {
		return zero, perr.JSONErrf("trailing data after json body")
	}

	if err := validate(in); err != nil {
		return zero, err
	}
	return in, nil
}

// validate runs struct validation, translating the first failure into a
// project validation error with the offending field attached.
// Non-struct payloads (maps, slices) pass through untouched; their
// validation belongs to the service layer
func validate(in any) error {
	rv := reflect.ValueOf(in)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	svc := Get()
	err := svc.Validator.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return perr.WithField(
			perr.Validationf("%s", fe.Translate(svc.Translator)),
			fe.Field(),
		)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
}
