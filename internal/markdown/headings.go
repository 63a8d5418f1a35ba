package markdown

import (
	"bufio"
	"fmt"
	"strings"
)

// Default level bounds for navigable headings. H1 is the document title and
// anything deeper than H4 is too fine-grained for a table of contents.
const (
	MinHeadingLevel = 2
	MaxHeadingLevel = 4
)

// Heading is one navigable section marker extracted from document content.
// ID doubles as the rendered anchor target and the navigation-link target.
// Text is the normalized label: inline markers and emoji stripped.
type Heading struct {
	ID    string
	Level int
	Text  string
}

// ExtractHeadings extracts ATX headings within the default level bounds.
func ExtractHeadings(content string) []Heading {
	return ExtractHeadingsBetween(content, MinHeadingLevel, MaxHeadingLevel)
}

// ExtractHeadingsBetween scans content line by line for ATX headings whose
// level falls within [minLevel, maxLevel] and returns them in document order.
// Heading text runs through normalizeHeading before slugging; colliding IDs
// get the first unused -1, -2, ... suffix. Headings whose text normalizes to
// nothing are dropped so every returned heading has a usable anchor.
func ExtractHeadingsBetween(content string, minLevel, maxLevel int) []Heading {
	var headings []Heading
	used := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(content))

	inFrontmatter := false
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip frontmatter
		if lineNum == 1 && line == "---" {
			inFrontmatter = true
			continue
		}
		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
			}
			continue
		}

		level, text, ok := parseATXHeading(line)
		if !ok || level < minLevel || level > maxLevel {
			continue
		}

		text = normalizeHeading(text)
		if text == "" {
			continue
		}

		headings = append(headings, Heading{
			ID:    uniqueID(Slugify(text), used),
			Level: level,
			Text:  text,
		})
	}

	return headings
}

// parseATXHeading matches lines of the form "## Heading text": one to six
// '#' markers followed by at least one space and non-empty text.
func parseATXHeading(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := line[level:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return 0, "", false
	}
	text = strings.TrimSpace(rest)
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// normalizeHeading produces the canonical heading label: inline markers
// removed, then emoji stripped and whitespace trimmed. Both the extractor
// and the renderer normalize through this single routine, so the slugged
// anchor is identical on both sides no matter how the text was collected.
func normalizeHeading(s string) string {
	return StripEmoji(stripInline(s))
}

// stripInline removes inline markdown decoration from heading text:
// emphasis and code-span markers are dropped, links and images keep their
// label and lose the destination.
func stripInline(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '*', '_', '`', '[':
			continue
		case '!':
			if i+1 < len(rs) && rs[i+1] == '[' {
				continue
			}
			b.WriteRune(rs[i])
		case ']':
			// Drop the (destination) that follows a link or image label.
			if i+1 < len(rs) && rs[i+1] == '(' {
				j := i + 2
				for j < len(rs) && rs[j] != ')' {
					j++
				}
				i = j
			}
		default:
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

// uniqueID records base in used, suffixing -1, -2, ... until free. Both the
// extractor and the renderer dedupe through this so anchors always line up.
func uniqueID(base string, used map[string]bool) string {
	id := base
	for n := 1; used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = true
	return id
}
