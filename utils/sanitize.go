package utils

import (
	"regexp"
	"strings"
)

// Sanitizers mirroring the WordPress field-sanitization behavior the API
// relies on: plain text fields lose all markup, textarea fields keep their
// line breaks, and rich content keeps a restricted tag subset.

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	hrefRe        = regexp.MustCompile(`(?i)href\s*=\s*"([^"]*)"|href\s*=\s*'([^']*)'`)
)

var allowedTags = map[string]bool{
	"p": true, "br": true, "strong": true, "b": true, "em": true, "i": true,
	"u": true, "a": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "del": true, "span": true,
}

// SanitizeText strips all markup and flattens the value to a single
// trimmed line.
func SanitizeText(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	s = stripControl(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeMultiline strips markup but preserves line breaks.
func SanitizeMultiline(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = stripControl(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeHTML keeps a restricted tag subset and drops everything else,
// including all attributes except href on anchors.
func SanitizeHTML(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	return strings.TrimSpace(tagRe.ReplaceAllStringFunc(s, rewriteTag))
}

func rewriteTag(tag string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	inner = strings.TrimSpace(inner)
	closing := strings.HasPrefix(inner, "/")
	inner = strings.TrimPrefix(inner, "/")

	name := strings.ToLower(inner)
	if i := strings.IndexAny(name, " \t\n/"); i >= 0 {
		name = name[:i]
	}
	if !allowedTags[name] {
		return ""
	}
	if closing {
		return "</" + name + ">"
	}
	if name == "br" {
		return "<br/>"
	}
	if name == "a" {
		if m := hrefRe.FindStringSubmatch(inner); m != nil {
			href := m[1]
			if href == "" {
				href = m[2]
			}
			if safeHref(href) {
				return `<a href="` + href + `">`
			}
		}
		return "<a>"
	}
	return "<" + name + ">"
}

func safeHref(href string) bool {
	h := strings.ToLower(strings.TrimSpace(href))
	return !strings.HasPrefix(h, "javascript:") && !strings.HasPrefix(h, "data:")
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
