package usecase

import (
	"regexp"
	"strings"
)

var (
	mdLinkRe      = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	atxHeadingRe  = regexp.MustCompile(`(?m)^\s*#{1,6}\s*(.+?)\s*$`)
	boldLabelRe   = regexp.MustCompile(`(?m)^\s*\*\*\s*(.*?)\s*\*\*\s*:?\s*$`)
	titlePrefixRe = regexp.MustCompile(`(?m)^\s*Title:\s*(.+?):\s*$`)
	bulletRe      = regexp.MustCompile(`(?m)^\s*[\-\*]\s+`)
	boldRe        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe      = regexp.MustCompile(`\*(.*?)\*`)
	codeSpanRe    = regexp.MustCompile("`([^`]*)`")
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)
	selfLinkRe    = regexp.MustCompile(`(?i)(https?://[^\s)]+) \(` + `(https?://[^\s)]+)\)`)
	plainHeadRe   = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.*)$`)
)

// CleanLegalResponse normalizes model markdown into the answer house style:
// headings become "Label:" lines, bullets become "•", links become
// "text (url)", emphasis markers are stripped, and duplicate consecutive
// heading lines collapse.
func CleanLegalResponse(text string) string {
	if text == "" {
		return text
	}
	t := text

	t = mdLinkRe.ReplaceAllString(t, "$1 ($2)")
	t = atxHeadingRe.ReplaceAllString(t, "\n$1:\n")
	t = boldLabelRe.ReplaceAllString(t, "$1:")
	t = titlePrefixRe.ReplaceAllString(t, "$1:")
	t = bulletRe.ReplaceAllString(t, "• ")
	t = boldRe.ReplaceAllString(t, "$1")
	t = italicRe.ReplaceAllString(t, "$1")
	t = strings.ReplaceAll(t, "`", "")
	t = strings.ReplaceAll(t, "_", " ")

	// Drop a heading line repeated immediately under itself.
	lines := strings.Split(t, "\n")
	out := lines[:0]
	prevTitle := ""
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if strings.HasSuffix(s, ":") {
			if prevTitle == s {
				continue
			}
			prevTitle = s
		} else {
			prevTitle = ""
		}
		out = append(out, line)
	}
	t = strings.Join(out, "\n")

	t = blankRunsRe.ReplaceAllString(t, "\n\n")
	t = selfLinkRe.ReplaceAllStringFunc(t, func(m string) string {
		sub := selfLinkRe.FindStringSubmatch(m)
		if strings.EqualFold(sub[1], sub[2]) {
			return sub[1]
		}
		return m
	})
	return strings.TrimSpace(t)
}

// FormatPlain strips remaining markdown for plain-text delivery while
// keeping "-" bullet lists and bare heading lines readable.
func FormatPlain(text string) string {
	t := boldRe.ReplaceAllString(text, "$1")
	t = italicRe.ReplaceAllString(t, "$1")
	t = codeSpanRe.ReplaceAllString(t, "$1")

	lines := strings.Split(t, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		if i == 0 && strings.EqualFold(strings.TrimSpace(line), "title") {
			for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
				i++
			}
			continue
		}
		if m := plainHeadRe.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
			continue
		}
		if rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), "* "); ok {
			out = append(out, "- "+strings.TrimSpace(rest))
			continue
		}
		out = append(out, line)
	}

	normalized := blankRunsRe.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	normalized = strings.ReplaceAll(normalized, "#", "")
	normalized = strings.ReplaceAll(normalized, "**", "")
	normalized = strings.ReplaceAll(normalized, "*", "")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	return strings.TrimSpace(normalized)
}

// FormatOutput finalizes a cleaned answer for delivery. Markdown mode keeps
// the markers and only collapses blank-line runs; plain mode strips markdown
// entirely.
func FormatOutput(text string, markdown bool) string {
	if markdown {
		return strings.TrimSpace(blankRunsRe.ReplaceAllString(text, "\n\n"))
	}
	return FormatPlain(text)
}

// Sanitize runs the full output pass used by every answer tier.
func Sanitize(text string, markdown bool) string {
	return FormatOutput(CleanLegalResponse(text), markdown)
}
