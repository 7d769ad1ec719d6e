package linelog

import (
	"strings"
)

// lineBreaks escapes line terminators so one entry is always one line.
var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`) //nolint:gochecknoglobals

// formatEntry returns the bytes written for one entry. The space before the
// newline is part of the file format; existing files and readers depend on it.
func formatEntry(stamp, tag, message string) []byte {
	tag = lineBreaks.Replace(tag)
	message = lineBreaks.Replace(message)

	entry := make([]byte, 0, len(stamp)+len(tag)+len(message)+len(" [] :  \n"))
	entry = append(entry, stamp...)
	entry = append(entry, " ["...)
	entry = append(entry, tag...)
	entry = append(entry, "] : "...)
	entry = append(entry, message...)

	return append(entry, " \n"...)
}
