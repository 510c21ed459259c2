// Package contact holds the request-more-info forms and their submission state.
package contact

import "fmt"

// Field names one input of the contact form
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
	FieldConsent Field = "consent"
)

// Form is an immutable snapshot of the form inputs
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

// WithText returns a copy of f with one text field replaced
func (f Form) WithText(field Field, value string) (Form, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return f, fmt.Errorf("field %q is not a text field", field)
	}
	return f, nil
}

// WithConsent returns a copy of f with the consent checkbox set
func (f Form) WithConsent(consent bool) Form {
	f.Consent = consent
	return f
}

// Text returns the value of a text field
func (f Form) Text(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}
