package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xaenox/pathway-assist/internal/models"
)

func TestValidateStripsStaffNames(t *testing.T) {
	v := New(nil)

	result := v.Validate("Kevin will be in touch about your enrolment shortly.", Context{})

	assert.NotContains(t, result.SanitizedResponse, "Kevin")
	assert.Contains(t, result.SanitizedResponse, "our course advisor")
	assert.Contains(t, result.Violations, "staff_name_leaked:Kevin")
	assert.False(t, result.IsValid)
}

func TestValidateStripsPersonaNames(t *testing.T) {
	v := New(nil)

	result := v.Validate("Hi Priya, great question about the data course!", Context{
		PersonaFirstNames: []string{"Priya"},
	})

	assert.NotContains(t, result.SanitizedResponse, "Priya")
	assert.True(t, strings.HasPrefix(result.SanitizedResponse, "Hi there"))
	assert.Contains(t, result.Violations, "persona_name_leaked:Priya")
}

func TestValidateReplacesInformalSelfReferences(t *testing.T) {
	v := New(nil)

	result := v.Validate("You'd have to ask my creator about that feature.", Context{})

	assert.NotContains(t, strings.ToLower(result.SanitizedResponse), "my creator")
	assert.Contains(t, result.SanitizedResponse, "our team")
	assert.Contains(t, result.Violations, "informal_self_reference")
}

func TestValidateReplacesEveryInformalSelfReference(t *testing.T) {
	v := New(nil)

	result := v.Validate("My creator built me, and my creator still maintains me.", Context{})

	assert.NotContains(t, strings.ToLower(result.SanitizedResponse), "my creator")
	assert.Equal(t, 2, strings.Count(result.SanitizedResponse, "our team"))
}

func TestValidatePersonalizesGreeting(t *testing.T) {
	v := New(nil)

	result := v.Validate("Hi there! Thanks for your interest in our courses.", Context{
		UserDisplayName: "Alex",
	})

	assert.True(t, strings.HasPrefix(result.SanitizedResponse, "Hi Alex,"))
}

func TestValidateAppendsConsultationPreparation(t *testing.T) {
	v := New(nil)

	result := v.Validate("I've noted your consultation request and someone will confirm soon.", Context{})

	assert.Contains(t, result.SanitizedResponse, "30 minutes")
	assert.Contains(t, result.SanitizedResponse, "career goals")
	assert.Contains(t, result.Violations, "consultation_details_missing")
}

func TestValidateConsultationWithDetailsPasses(t *testing.T) {
	v := New(nil)

	response := "Your consultation runs for 30 minutes. To prepare, bring questions about your career goals."
	result := v.Validate(response, Context{})

	assert.NotContains(t, result.Violations, "consultation_details_missing")
}

func TestValidateCrisisFlagsForceEscalation(t *testing.T) {
	v := New(nil)

	// Even a short, unpunctuated text passes: crisis responses are exempt
	// from quality checks.
	result := v.Validate("call Lifeline", Context{SecurityFlags: []string{"critical_crisis"}})

	assert.Equal(t, models.ResponseCrisis, result.ResponseType)
	assert.True(t, result.RequiresHumanEscalation)
	assert.NotContains(t, result.Violations, "response_too_short")
}

func TestValidateResponseTypeFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		expected models.ResponseType
	}{
		{"crisis", []string{"critical_crisis"}, models.ResponseCrisis},
		{"crisis wins over distress", []string{"emotional_distress", "critical_crisis"}, models.ResponseCrisis},
		{"distress", []string{"emotional_distress"}, models.ResponseEmotionalSupport},
		{"distress wins over blocked", []string{"content_blocked", "emotional_distress"}, models.ResponseEmotionalSupport},
		{"blocked", []string{"content_blocked"}, models.ResponseBlocked},
		{"normal", nil, models.ResponseNormal},
	}

	v := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate("Thanks for reaching out, happy to help with that today.", Context{SecurityFlags: tt.flags})
			assert.Equal(t, tt.expected, result.ResponseType)
		})
	}
}

func TestValidateQualityChecks(t *testing.T) {
	v := New(nil)

	tests := []struct {
		name      string
		response  string
		violation string
	}{
		{"too short", "Hi.", "response_too_short"},
		{"too long", strings.Repeat("a", 1001), "response_too_long"},
		{"no terminal punctuation", "This response is over thirty characters but trails off", "missing_terminal_punctuation"},
		{"slang", "Yeah we're gonna cover all of that in the course, don't worry.", "informal_language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.response, Context{})
			assert.Contains(t, result.Violations, tt.violation)
			assert.False(t, result.IsValid)
		})
	}
}

func TestValidateCleanResponseIsValid(t *testing.T) {
	v := New(nil)

	result := v.Validate("We offer bootcamps in data, cybersecurity, and full-stack development.", Context{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
	assert.Equal(t, models.ResponseNormal, result.ResponseType)
}
