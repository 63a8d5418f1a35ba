package markdown

import "strings"

// emojiRanges are the pictographic blocks stripped from heading text before
// slugging: emoticons, misc symbols and pictographs, transport, regional
// indicators, misc symbols, and dingbats.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
}

// StripEmoji removes pictographic symbols from text and trims surrounding
// whitespace. Text that is emoji-only collapses to the empty string.
func StripEmoji(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		buf.WriteRune(r)
	}
	return strings.TrimSpace(buf.String())
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// Slugify converts heading text to a URL-safe anchor identifier. Lowercase
// Latin letters, digits, and Hangul syllables pass through; everything else
// becomes a hyphen, with runs collapsed and ends trimmed. The result is a
// fixed point: Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	var buf strings.Builder
	buf.Grow(len(s))
	hyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || (r >= 0xAC00 && r <= 0xD7A3) {
			buf.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen {
			buf.WriteByte('-')
			hyphen = true
		}
	}

	return strings.Trim(buf.String(), "-")
}
