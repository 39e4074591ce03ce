// Package security implements the question filter that runs before retrieval.
//
// The filter is a best-effort heuristic layer, not a security boundary: it
// blocks casual prompt-leak attempts and keeps the assistant scoped to the
// uploaded documents. A determined adversary can phrase around keyword lists;
// false negatives are accepted, false positives should stay rare enough not
// to block legitimate document questions.
package security

import (
	"regexp"
	"strings"
)

// Verdict is the classification of an incoming question.
type Verdict int

const (
	// VerdictSafe means neither pattern set matched; the question proceeds to
	// retrieval.
	VerdictSafe Verdict = iota
	// VerdictPromptExtraction means the question tries to reveal internal
	// instructions or override directives.
	VerdictPromptExtraction
	// VerdictSensitiveTopic means the question touches a regulated or
	// sensitive domain the assistant does not handle.
	VerdictSensitiveTopic
)

// String returns the verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictPromptExtraction:
		return "prompt_extraction"
	case VerdictSensitiveTopic:
		return "sensitive_topic"
	default:
		return "safe"
	}
}

// promptExtractionPatterns match attempts to reveal system instructions,
// internal configuration or architecture, or to override prior directives.
// Matching is case-insensitive; any single match classifies the question.
var promptExtractionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|your\s+|previous\s+|prior\s+)*(instructions|directives|rules)`),
	regexp.MustCompile(`(?i)system\s+prompt`),
	regexp.MustCompile(`(?i)(what\s+are|show\s+me|tell\s+me|reveal)\s+your\s+(rules|instructions|prompt|guidelines|configuration)`),
	regexp.MustCompile(`(?i)reveal\s+(the|your)\s+prompt`),
	regexp.MustCompile(`(?i)(repeat|print|output)\s+(the|your)\s+(prompt|instructions)`),
	regexp.MustCompile(`(?i)how\s+(do|were)\s+you\s+(work|built|programmed|trained|configured)`),
	regexp.MustCompile(`(?i)your\s+(internal|hidden)\s+(configuration|architecture|settings|state)`),
	regexp.MustCompile(`(?i)(disregard|forget)\s+(everything|all)\s+(above|before|prior)`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+(have\s+no|had\s+no)\s+(rules|restrictions|instructions)`),
	regexp.MustCompile(`(?i)what\s+(model|llm)\s+(are\s+you|powers\s+you)`),
}

// sensitiveKeywords are substrings associated with regulated or sensitive
// domains. Case-insensitive substring match.
var sensitiveKeywords = []string{
	"password",
	"credit card",
	"social security",
	"ssn",
	"bank account",
	"medical diagnosis",
	"medical advice",
	"legal advice",
	"financial advice",
	"investment advice",
	"tax advice",
	"prescription",
}

// Gate classifies incoming questions before any retrieval happens, so a
// blocked question can never leak index contents through a similarity
// side-channel.
type Gate struct{}

// NewGate creates a new Gate.
func NewGate() *Gate {
	return &Gate{}
}

// Classify returns the verdict for a question. Prompt-extraction rules are
// checked first; the first match wins, there is no scoring or combination
// logic.
func (g *Gate) Classify(question string) Verdict {
	for _, p := range promptExtractionPatterns {
		if p.MatchString(question) {
			return VerdictPromptExtraction
		}
	}

	lowered := strings.ToLower(question)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lowered, kw) {
			return VerdictSensitiveTopic
		}
	}

	return VerdictSafe
}
