// Package validation собирает правила полей и переводит ошибки validator/v10 в читаемые сообщения.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	employeeIDRe = regexp.MustCompile(`^EMP\d{3,}$`)
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s.\-']+$`)
)

// Validator — validator/v10 с зарегистрированными правилами и английскими сообщениями.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New создаёт валидатор с правилами employee_id и person_name.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	rules := []struct {
		tag string
		fn  validator.Func
		msg string
	}{
		{"employee_id", isEmployeeID, `{0} must start with "EMP" followed by at least 3 digits (e.g., EMP001)`},
		{"person_name", isPersonName, "{0} can only contain letters, spaces, dots, hyphens, and apostrophes"},
		{"not_blank", notBlank, "{0} cannot be empty"},
	}
	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, err
		}
		msg := rule.msg
		tag := rule.tag
		err := validate.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// MustNew как New, но паникует: правила статичны, ошибка регистрации — ошибка программиста.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Struct проверяет структуру и возвращает сообщения для каждого нарушенного поля.
func (v *Validator) Struct(s any) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Translate(v.translator))
	}
	return out
}

// IsEmployeeID проверяет уже нормализованный (верхний регистр) идентификатор.
func IsEmployeeID(s string) bool {
	return employeeIDRe.MatchString(s)
}

func isEmployeeID(fl validator.FieldLevel) bool {
	return IsEmployeeID(fl.Field().String())
}

func isPersonName(fl validator.FieldLevel) bool {
	return personNameRe.MatchString(fl.Field().String())
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
