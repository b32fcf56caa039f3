package util

import "strings"

// TrimFences removes code-fence markup the model wraps around JSON.
//
// Trimming works on character sets, not on prefix/suffix: any run of
// '`', 'j', 's', 'o', 'n' or '\n' is cut from both ends first, then any
// remaining backticks. Content that itself starts or ends with those
// characters (a bare `null`, a trailing newline inside a string) is cut too;
// callers must treat the result as a best-effort guess.
func TrimFences(s string) string {
	s = strings.Trim(s, "`json\n")
	return strings.Trim(s, "`")
}
