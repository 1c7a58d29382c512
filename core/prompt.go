package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/worklog/internal/contract"
	"github.com/huangsam/worklog/internal/summarize"
	"github.com/huangsam/worklog/schema"
)

// datePlaceholder is replaced by the date hint in prompt templates.
const datePlaceholder = "{date}"

// lineSeparator joins digest lines into the user message.
const lineSeparator = ";"

// DateHint renders the target date as "Y-M-D" without zero padding, for example "2024-1-5".
func DateHint(override schema.DateOverride, now time.Time) string {
	year, month, day := override.Resolve(now)
	return fmt.Sprintf("%d-%d-%d", year, int(month), day)
}

// BuildPrompt fills the date into template and joins the digest into the user message.
// An empty template falls back to contract.DefaultPromptTemplate.
func BuildPrompt(template, dateHint string, digest []string) summarize.Prompt {
	if strings.TrimSpace(template) == "" {
		template = contract.DefaultPromptTemplate
	}
	return summarize.Prompt{
		System: strings.ReplaceAll(template, datePlaceholder, dateHint),
		User:   strings.Join(digest, lineSeparator),
	}
}
