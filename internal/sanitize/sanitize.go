// Package sanitize strips markup from user-supplied profile text. Uses
// bluemonday's strict policy so names and bios are stored as plain text and
// can be rendered by any client without escaping surprises.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict policy. Initialized once via sync.Once for
// thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// maxPasses bounds how many entity layers and strip rounds PlainText runs.
const maxPasses = 4

// PlainText removes every HTML tag from input and trims surrounding space.
// Entities are decoded before sanitizing so "&lt;b&gt;" is stripped like
// "<b>", and decode-then-strip repeats until the text stops changing, so
// no tag survives in any decoded form. Plain characters such as "&" stay as
// typed. Empty input stays empty so defaults still apply.
func PlainText(input string) string {
	if input == "" {
		return ""
	}

	text := decodeEntities(strings.TrimSpace(input))
	for range maxPasses {
		next := decodeEntities(strings.TrimSpace(getPolicy().Sanitize(text)))
		if next == text {
			return text
		}
		text = next
	}

	// Still changing: fall back to the escaped form, which is inert.
	return strings.TrimSpace(getPolicy().Sanitize(text))
}

// decodeEntities unescapes s until no entity is left, up to maxPasses layers.
func decodeEntities(s string) string {
	for range maxPasses {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	return s
}
