package validator

import (
	"regexp"
	"strings"

	"github.com/xaenox/pathway-assist/internal/models"
)

// staffRoleTitle replaces leaked staff first names in generated text.
const staffRoleTitle = "our course advisor"

// Standard paragraph appended when a consultation response omits duration
// or preparation details.
const preparationParagraph = "Consultations run for 30 minutes. To get the most out of yours, " +
	"bring any questions about your career goals, your current skills, and your preferred study schedule."

// defaultStaffNames are literal first names that must never appear in
// generated output.
var defaultStaffNames = []string{"Kevin", "Amanda", "Rohan", "Lisa"}

// Informal self-references and their professional replacements. Every
// occurrence is replaced, regardless of casing.
var selfRefRules = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bthe developer\b`), "our team"},
	{regexp.MustCompile(`(?i)\bmy creator\b`), "our team"},
	{regexp.MustCompile(`(?i)\bmy programmer\b`), "our team"},
	{regexp.MustCompile(`(?i)the guys who made me`), "our team"},
}

var genericGreetingRe = regexp.MustCompile(`^(Hi|Hello|Hey)\s+there[,!]?`)
var slangRe = regexp.MustCompile(`(?i)\b(lol|lmao|gonna|wanna|dunno|nah|yeah nah|tbh)\b`)

// Context carries the per-turn information the validator needs.
type Context struct {
	SecurityFlags   []string
	UserDisplayName string
	// PersonaFirstNames are archetype first names that must never leak into
	// output addressed to the user.
	PersonaFirstNames []string
}

type staffRule struct {
	name string
	re   *regexp.Regexp
}

// Validator post-processes generated responses: it redacts name leakage,
// professionalizes phrasing, and classifies the response. Violations are
// advisory; the sanitized response is always usable.
type Validator struct {
	staffRules []staffRule
}

func New(staffNames []string) *Validator {
	if len(staffNames) == 0 {
		staffNames = defaultStaffNames
	}
	rules := make([]staffRule, len(staffNames))
	for i, name := range staffNames {
		rules[i] = staffRule{
			name: name,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
		}
	}
	return &Validator{staffRules: rules}
}

// Validate runs the full pass over the response text.
func (v *Validator) Validate(response string, ctx Context) models.ValidationResult {
	violations := []string{}
	sanitized := response

	// (a) Staff first names become a generic role title.
	for _, rule := range v.staffRules {
		if rule.re.MatchString(sanitized) {
			sanitized = rule.re.ReplaceAllString(sanitized, staffRoleTitle)
			violations = append(violations, "staff_name_leaked:"+rule.name)
		}
	}

	// (b) Persona first names must never be used to address the user.
	for _, name := range ctx.PersonaFirstNames {
		re := regexp.MustCompile(`(?i)\b(hi|hello|hey|dear)\s+` + regexp.QuoteMeta(name) + `\b`)
		if re.MatchString(sanitized) {
			sanitized = re.ReplaceAllString(sanitized, "Hi there")
			violations = append(violations, "persona_name_leaked:"+name)
		}
	}

	// (c) Informal self-references.
	for _, rule := range selfRefRules {
		if rule.re.MatchString(sanitized) {
			sanitized = rule.re.ReplaceAllString(sanitized, rule.replacement)
			violations = append(violations, "informal_self_reference")
		}
	}

	// (d) Personalize a generic greeting for authenticated users.
	if ctx.UserDisplayName != "" && genericGreetingRe.MatchString(sanitized) {
		sanitized = genericGreetingRe.ReplaceAllString(sanitized, "Hi "+ctx.UserDisplayName+",")
	}

	responseType := typeFromFlags(ctx.SecurityFlags)

	// (e) Consultation responses must state a duration and preparation
	// content.
	if responseType != models.ResponseCrisis && mentionsConsultation(sanitized) {
		if !mentionsDuration(sanitized) || !mentionsPreparation(sanitized) {
			sanitized = strings.TrimRight(sanitized, " \n") + "\n\n" + preparationParagraph
			violations = append(violations, "consultation_details_missing")
		}
	}

	// Quality checks are skipped entirely for crisis responses: a safety
	// message must not be reshaped after the fact.
	if responseType != models.ResponseCrisis {
		violations = append(violations, qualityViolations(sanitized)...)
	}

	return models.ValidationResult{
		IsValid:                 len(violations) == 0,
		SanitizedResponse:       sanitized,
		Violations:              violations,
		RequiresHumanEscalation: responseType == models.ResponseCrisis,
		ResponseType:            responseType,
	}
}

// typeFromFlags derives the response type purely from the security flags.
func typeFromFlags(flags []string) models.ResponseType {
	for _, f := range flags {
		if f == "critical_crisis" {
			return models.ResponseCrisis
		}
	}
	for _, f := range flags {
		if f == "emotional_distress" {
			return models.ResponseEmotionalSupport
		}
	}
	for _, f := range flags {
		if strings.Contains(f, "blocked") {
			return models.ResponseBlocked
		}
	}
	return models.ResponseNormal
}

func mentionsConsultation(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "consultation") || strings.Contains(lower, "booking") ||
		strings.Contains(lower, "book a session")
}

func mentionsDuration(text string) bool {
	return regexp.MustCompile(`(?i)\b\d+\s*(minutes?|mins?|hours?)\b`).MatchString(text)
}

func mentionsPreparation(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "prepare") || strings.Contains(lower, "bring") ||
		strings.Contains(lower, "preparation")
}

func qualityViolations(text string) []string {
	var violations []string
	trimmed := strings.TrimSpace(text)

	if len(trimmed) < 20 {
		violations = append(violations, "response_too_short")
	}
	if len(trimmed) > 1000 {
		violations = append(violations, "response_too_long")
	}
	if len(trimmed) > 30 && !strings.ContainsAny(string(trimmed[len(trimmed)-1]), ".!?") {
		violations = append(violations, "missing_terminal_punctuation")
	}
	if slangRe.MatchString(trimmed) {
		violations = append(violations, "informal_language")
	}
	return violations
}
