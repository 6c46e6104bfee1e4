package contact

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ParseField maps a form input name to a Field. Both "name" and
// "fullName" name the sender's name.
func ParseField(s string) (Field, bool) {
	switch s {
	case "name", "fullName":
		return FieldName, true
	case "email":
		return FieldEmail, true
	case "message":
		return FieldMessage, true
	}
	return "", false
}

// Draft is the in-progress message.
type Draft struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,mailbox"`
	Message string `form:"message" validate:"required"`
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return "invalid contact form: " + strings.Join(names, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field Field) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

var mailboxRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})
	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return mailboxRE.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks that all fields are present and the email has a basic
// local@domain shape. Surrounding whitespace is ignored.
func Validate(d Draft) error {
	trimmed := Draft{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Message: strings.TrimSpace(d.Message),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		if f, ok := ParseField(fe.Field()); ok {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}
