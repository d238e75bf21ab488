package chat

import (
	"strings"
	"unicode/utf8"
)

// Split breaks text into messages of at most limit bytes. Each message ends at
// the last full line that fits; a single line longer than limit is cut at the
// limit, backing off so no UTF-8 character is torn. A limit of zero or less
// disables splitting.
func Split(text string, limit int) []string {
	if text == "" {
		return nil
	}
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var messages []string
	rest := text
	for len(rest) > limit {
		cut := strings.LastIndex(rest[:limit+1], "\n")
		switch {
		case cut == 0:
			rest = rest[1:]
		case cut > 0:
			messages = append(messages, rest[:cut])
			rest = rest[cut+1:]
		default:
			hard := limit
			for hard > 0 && !utf8.RuneStart(rest[hard]) {
				hard--
			}
			if hard == 0 {
				hard = limit
			}
			messages = append(messages, rest[:hard])
			rest = rest[hard:]
		}
	}
	if rest != "" {
		messages = append(messages, rest)
	}
	return messages
}
