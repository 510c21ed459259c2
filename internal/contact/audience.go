package contact

import (
	"fmt"
	"sync"
)

// Audience selects who the general contact form is addressed to
type Audience string

const (
	AudienceEntrepreneurs Audience = "entrepreneurs"
	AudienceStudents      Audience = "students"
)

// Audiences lists the selectable tabs in display order
func Audiences() []Audience {
	return []Audience{AudienceEntrepreneurs, AudienceStudents}
}

// ParseAudience converts s into an Audience; empty means entrepreneurs
func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceEntrepreneurs, "":
		return AudienceEntrepreneurs, nil
	case AudienceStudents:
		return AudienceStudents, nil
	default:
		return "", fmt.Errorf("invalid audience: %s (must be one of: entrepreneurs, students)", s)
	}
}

// Label is the tab caption
func (a Audience) Label() string {
	if a == AudienceStudents {
		return "Students"
	}
	return "Entrepreneurs"
}

// Placeholder is the message box hint for the audience
func (a Audience) Placeholder() string {
	if a == AudienceStudents {
		return "Tell us about your interests"
	}
	return "Tell us about your venture"
}

// Selector is the two-valued audience tab state
type Selector struct {
	mu      sync.Mutex
	current Audience
}

// NewSelector starts on the entrepreneurs tab
func NewSelector() *Selector {
	return &Selector{current: AudienceEntrepreneurs}
}

// Current returns the selected audience
func (s *Selector) Current() Audience {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Select switches tabs; unknown values are ignored
func (s *Selector) Select(a Audience) {
	if a != AudienceEntrepreneurs && a != AudienceStudents {
		return
	}
	s.mu.Lock()
	s.current = a
	s.mu.Unlock()
}

// Placeholder is the message box hint for the selected tab
func (s *Selector) Placeholder() string {
	return s.Current().Placeholder()
}
