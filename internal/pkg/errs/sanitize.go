package errs

import "strings"

// sanitize flattens newlines out of an error message so a single error always
// occupies a single log line.
func sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	return msg
}
