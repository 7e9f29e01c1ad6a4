// File: services/validation/validation.go
package validation

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	personNameRe   = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ ]{2,30}$`)
	phoneRe        = regexp.MustCompile(`^\d{10}$`)
	emailRe        = regexp.MustCompile(`\S+@\S+\.\S+`)
	passwordRe     = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
	categoryNameRe = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ0-9 \-]{3,100}$`)
	categoryDescRe = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñ0-9 ,.()!¡¿?"'-]{0,255}$`)
)

const passwordSymbols = "@$!%*?&"

var messages = map[string]string{
	"required":       "This field is required.",
	"personname":     "Only letters and spaces, 2 to 30 characters.",
	"phone10":        "Phone must be 10 digits.",
	"looseemail":     "Invalid email format.",
	"strongpassword": "Password needs at least 8 characters with upper and lower case letters, a number and a symbol (@$!%*?&).",
	"categoryname":   "Name must be 3 to 100 letters, digits, spaces or hyphens.",
	"categorydesc":   "Description may hold up to 255 letters, digits and basic punctuation.",
	"eqfield":        "Passwords do not match.",
	"gt":             "Must be greater than zero.",
	"oneof":          "Unsupported value.",
	"notblank":       "This field cannot be blank.",
}

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the form tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "personname", matchString(personNameRe))
		mustRegister(v, "phone10", matchString(phoneRe))
		mustRegister(v, "looseemail", matchString(emailRe))
		mustRegister(v, "categoryname", matchString(categoryNameRe))
		mustRegister(v, "categorydesc", matchString(categoryDescRe))
		mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool {
			return StrongPassword(fl.Field().String())
		})
		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// StrongPassword requires 8+ characters from the allowed set, with at least one
// lower case letter, upper case letter, digit and symbol.
func StrongPassword(p string) bool {
	if !passwordRe.MatchString(p) {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// ValidEmail applies the loose email shape check used by every form.
func ValidEmail(email string) bool { return emailRe.MatchString(email) }

// FieldErrors maps a form field (json name) to its message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates form and returns nil or a FieldErrors keyed by json field name.
func Struct(form any) error {
	err := Validator().Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		out[fe.Field()] = msg
	}
	return out
}
