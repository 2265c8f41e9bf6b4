// Package prompt turns a transcript into a generation prompt. Everything
// here is a pure function: degenerate inputs still produce a syntactically
// valid prompt, they never fail the pipeline.
package prompt

import (
	"fmt"
	"strings"
)

// Mode selects which transformation is applied to a transcript.
type Mode string

const (
	ModeSummary    Mode = "summary"
	ModeStepByStep Mode = "stepByStep"
	ModeScript     Mode = "script"
)

// NoLimitSentinel is the wire value meaning "no word limit".
const NoLimitSentinel = "noLimits"

// ParseMode maps the wire mode selector to a Mode. The front-end sends
// "StepByStep" or "script"; anything else means summary.
func ParseMode(s string) Mode {
	switch s {
	case "StepByStep":
		return ModeStepByStep
	case "script":
		return ModeScript
	default:
		return ModeSummary
	}
}

// Summary and step-by-step mirror the transcript's language. Script is the
// only mode with a pinned output language.
const (
	summaryTemplate = "Sum up the text below, keeping the important information. " +
		"Don't include information about ads and sponsorship. " +
		"%sFinally, keep the summary in the same language as the text. That's the text:\n\n%s"

	stepByStepTemplate = "Rewrite the text below as a step-by-step guide with numbered steps, keeping the important information. " +
		"Don't include information about ads and sponsorship. " +
		"%sFinally, keep the guide in the same language as the text. That's the text:\n\n%s"

	scriptTemplate = "Rewrite the text below as a short-video script. Start with an attention-grabbing opener and keep a dry sense of humor throughout. " +
		"Don't include stage directions, and don't include information about ads and sponsorship. " +
		"%sFinally, write the script in Brazilian Portuguese. That's the text:\n\n%s"
)

var templates = map[Mode]string{
	ModeSummary:    summaryTemplate,
	ModeStepByStep: stepByStepTemplate,
	ModeScript:     scriptTemplate,
}

// LimitClause renders the optional word-limit clause. The limit is treated
// as opaque: "noLimits", nil or blank means unrestricted, anything else is
// interpolated verbatim. A bad limit degrades prompt quality, not
// correctness.
func LimitClause(wordLimit any) string {
	switch v := wordLimit.(type) {
	case nil:
		return ""
	case string:
		if v == NoLimitSentinel || strings.TrimSpace(v) == "" {
			return ""
		}
	}
	return fmt.Sprintf("Respect the limit of %v words. ", wordLimit)
}

// Build assembles the prompt for one generation call. The limit clause must
// already be rendered so exactly one well-formed clause is injected.
func Build(transcript string, mode Mode, limitClause string) string {
	template, ok := templates[mode]
	if !ok {
		template = summaryTemplate
	}
	return fmt.Sprintf(template, limitClause, transcript)
}
