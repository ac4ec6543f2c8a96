package security

import "regexp"

// The detection rules below are versioned configuration: orchestration code
// never inspects the regexes directly, only the Matcher results, so the
// pattern set can change without touching scanner logic.

// Matcher evaluates one category of patterns against message content and
// returns the tags of everything that matched.
type Matcher interface {
	Match(content string) []string
}

// Flag tags emitted by the matchers.
const (
	FlagCriticalCrisis    = "critical_crisis"
	FlagCreditCard        = "credit_card"
	FlagTFN               = "tfn"
	FlagSSN               = "ssn"
	FlagMedicare          = "medicare"
	FlagPassport          = "passport"
	FlagSQLInjection      = "sql_injection"
	FlagPromptInjection   = "prompt_injection"
	FlagXSS               = "xss"
	FlagEmotionalDistress = "emotional_distress"
	FlagHarassment        = "harassment"
)

type patternRule struct {
	tag string
	re  *regexp.Regexp
}

// tableMatcher runs an ordered list of independent pattern rules and
// collects every matching tag.
type tableMatcher struct {
	rules []patternRule
}

func (m *tableMatcher) Match(content string) []string {
	var tags []string
	for _, rule := range m.rules {
		if rule.re.MatchString(content) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

// NewCrisisMatcher detects self-harm and suicide phrasing. A single combined
// expression keeps the check to one pass over the content.
func NewCrisisMatcher() Matcher {
	return &tableMatcher{rules: []patternRule{
		{FlagCriticalCrisis, regexp.MustCompile(`(?i)\b(kill(ing)?\s+myself|suicid(e|al)|end(ing)?\s+my\s+life|self[\s-]?harm|hurt(ing)?\s+myself|don'?t\s+want\s+to\s+(live|be\s+alive)|better\s+off\s+dead|no\s+reason\s+to\s+live)\b`)},
	}}
}

// NewPIIMatcher detects personally identifiable number shapes. Each category
// is checked independently so a message can carry multiple PII flags.
func NewPIIMatcher() Matcher {
	return &tableMatcher{rules: []patternRule{
		// 13-19 digit card numbers, optionally grouped by spaces or dashes.
		{FlagCreditCard, regexp.MustCompile(`\b(?:\d[ -]?){12,18}\d\b`)},
		// Australian Tax File Number: 3-3-3 digit groups.
		{FlagTFN, regexp.MustCompile(`\b\d{3}[ -]\d{3}[ -]\d{3}\b`)},
		// US Social Security Number: 3-2-4 digit groups.
		{FlagSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
		// Australian Medicare number: 10 digits, usually 4-5-1.
		{FlagMedicare, regexp.MustCompile(`\b\d{4}[ -]?\d{5}[ -]?\d{1}\b`)},
		{FlagPassport, regexp.MustCompile(`(?i)\bpassport\s*(number|no\.?|#)?\s*(is)?\s*:?\s*[A-Z]{1,2}\d{7,8}\b`)},
	}}
}

// NewThreatMatcher detects injection and markup attacks against the
// assistant or its backing store.
func NewThreatMatcher() Matcher {
	return &tableMatcher{rules: []patternRule{
		{FlagSQLInjection, regexp.MustCompile(`(?i)(\bunion\s+select\b|\bdrop\s+table\b|\binsert\s+into\b|\bdelete\s+from\b|\bupdate\s+\w+\s+set\b|\bexec(ute)?\s*\(|;\s*--|'\s*or\s+'?1'?\s*=\s*'?1)`)},
		{FlagPromptInjection, regexp.MustCompile(`(?i)(ignore\s+(all\s+)?(previous|prior|above)\s+(instructions?|prompts?)|disregard\s+(your|all)\s+(instructions?|rules)|you\s+are\s+now\s+(a|an)\s|system\s*prompt|pretend\s+(you('re|\s+are)|to\s+be)\s)`)},
		{FlagXSS, regexp.MustCompile(`(?i)(<\s*script|javascript\s*:|on(error|load|click)\s*=|<\s*iframe|<\s*img[^>]+src)`)},
	}}
}

// NewDistressMatcher detects emotional-distress phrasing. Matches never
// block; they soften downstream tone.
func NewDistressMatcher() Matcher {
	return &tableMatcher{rules: []patternRule{
		{FlagEmotionalDistress, regexp.MustCompile(`(?i)\b(overwhelmed|hopeless|can'?t\s+(cope|handle|do\s+this)|so\s+(stressed|anxious|depressed)|giving\s+up|falling\s+apart|at\s+my\s+limit|really\s+struggling)\b`)},
	}}
}

// NewHarassmentMatcher detects abusive language directed at staff or the
// assistant. Matches never block; they are flagged for the validator.
func NewHarassmentMatcher() Matcher {
	return &tableMatcher{rules: []patternRule{
		{FlagHarassment, regexp.MustCompile(`(?i)\b(you('re|\s+are)\s+(useless|stupid|an?\s+idiot|pathetic)|shut\s+up|f\*?u?ck\s+(you|off)|piece\s+of\s+(sh\*?i?t|garbage))\b`)},
	}}
}
