package contact

import (
	"fmt"
	"net/mail"
	"strings"
)

// Flow is one of the request-more-info forms on the page
type Flow string

const (
	// FlowEIR is the entrepreneur email capture (email and consent)
	FlowEIR Flow = "eir"
	// FlowContact is the general contact form with audience tabs
	FlowContact Flow = "contact"
)

// ParseFlow converts s into a Flow
func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case FlowEIR:
		return FlowEIR, nil
	case FlowContact:
		return FlowContact, nil
	default:
		return "", fmt.Errorf("invalid flow: %s (must be one of: eir, contact)", s)
	}
}

// Fields returns the inputs a flow renders, in display order
func (f Flow) Fields() []Field {
	if f == FlowEIR {
		return []Field{FieldEmail, FieldConsent}
	}
	return []Field{FieldName, FieldEmail, FieldMessage, FieldConsent}
}

// Required reports whether the flow requires field
func (f Flow) Required(field Field) bool {
	switch field {
	case FieldEmail, FieldConsent:
		return true
	case FieldName:
		return f == FlowContact
	default:
		return false
	}
}

// Validate applies the flow's required-field rules. Rendering layers call
// it before Submit; the controller itself does not validate.
func Validate(form Form, flow Flow) error {
	problems := make(map[Field]string)

	if flow.Required(FieldName) && strings.TrimSpace(form.Name) == "" {
		problems[FieldName] = "required"
	}
	if flow.Required(FieldEmail) {
		if err := validateEmail(form.Email); err != nil {
			problems[FieldEmail] = err.Error()
		}
	}
	if flow.Required(FieldConsent) && !form.Consent {
		problems[FieldConsent] = "must be checked"
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndexByte(email, '@')+1:], ".") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
