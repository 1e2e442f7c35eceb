package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	objectIDTag   = "objectid"
	objectIDText  = "must be a valid id"
	objectIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

	couponCodeTag   = "couponcode"
	couponCodeText  = "only uppercase letters, digits and dashes are allowed"
	couponCodeRegex = regexp.MustCompile(`^[A-Z0-9-]+$`)

	requiredTag  = "required"
	requiredText = "this field is required"
)

func init() {
	Validate = validator.New()
	enLocale := en.New()
	Translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(objectIDTag, objectIDValidation)
	RegisterCustomTranslation(objectIDTag, objectIDText)

	_ = Validate.RegisterValidation(couponCodeTag, couponCodeValidation)
	RegisterCustomTranslation(couponCodeTag, couponCodeText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateValidationErrors converts validator errors into a core.ValidationError.
func TranslateValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	return NewValidationError(err, flds...)
}

// Custom Validators

// objectIDValidation only allows 24-char hex ids (the platform's id format).
func objectIDValidation(fl validator.FieldLevel) bool {
	return objectIDRegex.MatchString(fl.Field().String())
}

// couponCodeValidation only allows uppercase alphanumerics and dashes.
func couponCodeValidation(fl validator.FieldLevel) bool {
	return couponCodeRegex.MatchString(fl.Field().String())
}
