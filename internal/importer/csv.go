package importer

import "strings"

// Delimiter used by the catalog export files
const Delimiter = ';'

// ParseLine splits one semicolon-delimited line into trimmed fields.
// A field may be wrapped in double quotes to embed literal semicolons
// (ex: "FECHO CHATO PORTA CADEADO 3"" REF:839"). Inside a quoted region a
// doubled quote decodes to one literal quote; any other quote toggles the
// in-quotes state. An unclosed quote consumes the rest of the line.
// A non-null line always yields at least one field, even when empty.
func ParseLine(line string) []string {
	fields := []string{}
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		char := runes[i]
		switch {
		case char == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++ // skip the second quote
			} else {
				inQuotes = !inQuotes
			}
		case char == Delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// QuoteField wraps a value in quotes when it contains the delimiter or a
// quote, doubling embedded quotes, so that ParseLine reads it back intact.
func QuoteField(value string) string {
	if !strings.ContainsRune(value, Delimiter) && !strings.Contains(value, `"`) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
