package catalog

import (
	"regexp"
	"strings"
)

// Family labels assigned from the scraped models page.
const (
	FamilyRNN         = "RNN"
	FamilyTransformer = "Transformer"
	FamilyCNN         = "CNN"
	FamilyLinearMLP   = "Linear/MLP"
	FamilySpecialized = "Specialized"
	FamilyOther       = "Other"
)

var (
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	autoNameRe = regexp.MustCompile(`\bAuto[A-Za-z0-9_]+\b`)

	// Section headers recognized on the models page, matched
	// case-insensitively against stripped lines.
	familyHeaders = []string{
		"rnn-based models",
		"transformer-based models",
		"cnn-based models",
		"linear and mlp models",
		"specialized models",
	}
)

// ParseFamilyMap scans raw HTML documentation text and attributes every
// Auto-prefixed identifier to the family section it appears under.
//
// No HTML parser is involved: markup is replaced by line breaks and the
// result scanned line by line, so malformed or reordered markup
// degrades to "no family detected" instead of failing. Identifiers seen
// before the first recognized header are not attributed.
func ParseFamilyMap(html string) map[string]string {
	text := tagRe.ReplaceAllString(html, "\n")

	family := ""
	famMap := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isFamilyHeader(line) {
			family = normalizeFamily(line)
			continue
		}
		if family == "" {
			continue
		}
		for _, name := range autoNameRe.FindAllString(line, -1) {
			famMap[name] = family
		}
	}

	return famMap
}

func isFamilyHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, h := range familyHeaders {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func normalizeFamily(header string) string {
	h := strings.ToLower(header)
	switch {
	case strings.Contains(h, "rnn-based"):
		return FamilyRNN
	case strings.Contains(h, "transformer-based"):
		return FamilyTransformer
	case strings.Contains(h, "cnn-based"):
		return FamilyCNN
	case strings.Contains(h, "linear"), strings.Contains(h, "mlp"):
		return FamilyLinearMLP
	case strings.Contains(h, "specialized"):
		return FamilySpecialized
	}
	return FamilyOther
}
