package util

import (
	"os"
	"strings"
)

// DefaultPrompt is the instruction sent alongside every image.
const DefaultPrompt = "Extract all fields and return the response in JSON format."

// LoadPrompt returns the contents of path, or DefaultPrompt when path is
// empty, unreadable or blank.
func LoadPrompt(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultPrompt
	}
	if b, err := os.ReadFile(path); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s
		}
	}
	return DefaultPrompt
}
