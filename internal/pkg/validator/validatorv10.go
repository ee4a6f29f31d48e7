package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/osteele/liquid"
	"gopkg.in/yaml.v3"

	"github.com/blueseamans/mailanes/internal/pkg/strcase"
)

var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var _ Validator = (*V10Validator)(nil)

// V10ValidationError maps snake_case field names to messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

func (vs V10ValidationError) Values() map[string]string {
	return vs
}

func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	trans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := registerRules(validate, trans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: trans}, nil
}

func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}
	return out
}

type rule struct {
	tag     string
	message string
	fn      validator.Func
}

var liquidEngine = liquid.NewEngine()

var rules = []rule{
	{
		tag:     "yaml",
		message: "{0} must be a valid YAML document",
		fn: func(fl validator.FieldLevel) bool {
			src, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}
			var doc any
			return yaml.Unmarshal([]byte(src), &doc) == nil
		},
	},
	{
		tag:     "liquid",
		message: "{0} must be a valid Liquid template",
		fn: func(fl validator.FieldLevel) bool {
			src, ok := fl.Field().Interface().(string)
			if !ok {
				return false
			}
			_, err := liquidEngine.ParseString(src)
			return err == nil
		},
	},
	{
		tag:     "notblank",
		message: "{0} must not be blank",
		fn: func(fl validator.FieldLevel) bool {
			src, ok := fl.Field().Interface().(string)
			return ok && strings.TrimSpace(src) != ""
		},
	},
}

func registerRules(validate *validator.Validate, trans ut.Translator) error {
	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}

		msg := r.message
		err := validate.RegisterTranslation(r.tag, trans,
			func(t ut.Translator) error { return t.Add(r.tag, msg, false) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("failed to translate validation error", "tag", fe.Tag(), "error", err)
					return fe.Error()
				}
				return s
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
