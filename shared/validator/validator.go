// Package validator validates request payloads tagged with go-playground
// `validate` tags and renders human-readable English messages.
package validator

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates structs and translates validation failures.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with English translations registered.
func New() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	translator, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("en translator not found")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}, nil
}

// Struct validates s and returns the first failure as a translated message.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(verrs[0].Translate(v.translator))
	}

	return err
}
