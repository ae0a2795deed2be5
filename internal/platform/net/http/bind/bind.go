// Package bind decodes JSON request bodies and validates them with go-playground/validator
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
)

// MaxBody is the default request body cap; a 200k character email fits with room for JSON escaping
const MaxBody = 1 << 20

// ValidatorSvc pairs the validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the process validator, building it on first use
// Messages use json tag names and short min/max/notblank wording
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			return f.Kind() == reflect.String && strings.TrimSpace(f.String()) != ""
		})
		translate(v, trans, "notblank", "{0} must not be blank")
		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Options controls ParseJSON
type Options struct {
	MaxBytes     int64 // 0 means MaxBody
	AllowUnknown bool
}

// ParseJSON decodes exactly one JSON value from the body into T and validates it
// Decode problems are JSON errors and failed rules are Validation errors; both map to 400
// A body past MaxBytes is PayloadTooLarge (413)
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = MaxBody
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("failed to close request body")
		}
	}()

	// no ResponseWriter here; the cap surfaces as *http.MaxBytesError on read
	br := bufio.NewReader(http.MaxBytesReader(nil, r.Body, o.MaxBytes))
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return zero, perr.Newf(perr.ErrorCodePayloadTooLarge, "request body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(err).Msg("validator misuse")
			return zero, perr.JSONErrf("validation error")
		}
		field, msg := FieldMessage(err)
		return zero, perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
	}
	return dst, nil
}

// FieldMessage returns the first failing field and its translated message
func FieldMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
