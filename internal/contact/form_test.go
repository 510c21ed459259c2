package contact

import (
	"errors"
	"strings"
	"testing"
)

func TestFormWithText(t *testing.T) {
	base := Form{Name: "Ada", Email: "ada@example.com", Message: "hi", Consent: true}

	tests := []struct {
		field Field
		value string
		want  Form
	}{
		{FieldName, "Grace", Form{Name: "Grace", Email: "ada@example.com", Message: "hi", Consent: true}},
		{FieldEmail, "g@example.org", Form{Name: "Ada", Email: "g@example.org", Message: "hi", Consent: true}},
		{FieldMessage, "", Form{Name: "Ada", Email: "ada@example.com", Message: "", Consent: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got, err := base.WithText(tt.field, tt.value)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if base.Name != "Ada" || base.Email != "ada@example.com" {
				t.Error("WithText must not modify the receiver")
			}
		})
	}
}

func TestFormWithTextRejectsConsent(t *testing.T) {
	if _, err := (Form{}).WithText(FieldConsent, "true"); err == nil {
		t.Error("Expected error when setting consent as text")
	}
}

func TestFormConsentAndText(t *testing.T) {
	f := Form{Email: "a@b.co"}.WithConsent(true)
	if !f.Consent {
		t.Error("Expected consent to be set")
	}
	if f.Text(FieldEmail) != "a@b.co" {
		t.Errorf("Expected email text, got %q", f.Text(FieldEmail))
	}
	if f.Text(FieldConsent) != "" {
		t.Error("Consent has no text value")
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusIdle:    "idle",
		StatusSending: "sending",
		StatusSuccess: "success",
		StatusError:   "error",
		Status(42):    "unknown",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(status), got, want)
		}
	}
}

func TestAudienceSelector(t *testing.T) {
	s := NewSelector()
	if s.Current() != AudienceEntrepreneurs {
		t.Fatalf("Expected entrepreneurs by default, got %s", s.Current())
	}
	if s.Placeholder() != "Tell us about your venture" {
		t.Errorf("Unexpected placeholder %q", s.Placeholder())
	}

	s.Select(AudienceStudents)
	if s.Current() != AudienceStudents {
		t.Fatalf("Expected students, got %s", s.Current())
	}
	if s.Placeholder() != "Tell us about your interests" {
		t.Errorf("Unexpected placeholder %q", s.Placeholder())
	}

	s.Select("investors")
	if s.Current() != AudienceStudents {
		t.Errorf("Unknown audience must be ignored, got %s", s.Current())
	}
}

func TestParseAudience(t *testing.T) {
	tests := []struct {
		in      string
		want    Audience
		wantErr bool
	}{
		{"", AudienceEntrepreneurs, false},
		{"entrepreneurs", AudienceEntrepreneurs, false},
		{"students", AudienceStudents, false},
		{"Students", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAudience(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAudience(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAudience(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if AudienceStudents.Label() != "Students" || AudienceEntrepreneurs.Label() != "Entrepreneurs" {
		t.Error("Unexpected audience labels")
	}
}

func TestSubmitErrorBehaviour(t *testing.T) {
	cause := errors.New("connection refused")
	err := &SubmitError{Kind: ErrKindNetwork, Message: "could not reach contact endpoint", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
	if !errors.Is(err, &SubmitError{Kind: ErrKindNetwork}) {
		t.Error("Expected Is to match on kind")
	}
	if errors.Is(err, &SubmitError{Kind: ErrKindTimeout}) {
		t.Error("Different kinds must not match")
	}
	if !strings.Contains(err.Error(), "kind=network") || !strings.Contains(err.Error(), "cause=connection refused") {
		t.Errorf("Unexpected message %q", err.Error())
	}

	retry := []struct {
		err  *SubmitError
		want bool
	}{
		{&SubmitError{Kind: ErrKindNetwork}, true},
		{&SubmitError{Kind: ErrKindTimeout}, true},
		{NewRejectedError(503, "busy"), true},
		{NewRejectedError(429, "slow down"), true},
		{NewRejectedError(400, "bad email"), false},
		{&SubmitError{Kind: ErrKindCanceled}, false},
		{&SubmitError{Kind: ErrKindInternal}, false},
	}
	for _, tt := range retry {
		if got := tt.err.IsRetryable(); got != tt.want {
			t.Errorf("%s IsRetryable = %v, want %v", tt.err.Error(), got, tt.want)
		}
	}
}
