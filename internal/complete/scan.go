// internal/complete/scan.go
package complete

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	varRe   = regexp.MustCompile(`(?im)^\s*var\s+([A-Za-z_][A-Za-z0-9_]*)`)
	aliasRe = regexp.MustCompile(`(?im)^\s*alias\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+?)\s*$`)
	constRe = regexp.MustCompile(`(?im)^\s*(?:const|define)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	labelRe = regexp.MustCompile(`(?m)^\s*([A-Za-z_][A-Za-z0-9_]*):`)

	hashLiteralRe = regexp.MustCompile(`-?\d+`)
	quotedNameRe  = regexp.MustCompile(`"([^"]*)"`)

	// Raw device and register references never trigger completion.
	deviceTokenRe = regexp.MustCompile(`^(?:d(?:b|[0-5])|r(?:[0-9]|1[0-5]))$`)
)

// aliasDecl is one `ALIAS name = target` declaration found in the
// document.
type aliasDecl struct {
	Name   string
	Target string
}

// scanAliases extracts every alias declaration from the document text.
func scanAliases(text string) []aliasDecl {
	matches := aliasRe.FindAllStringSubmatch(text, -1)
	decls := make([]aliasDecl, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, aliasDecl{Name: m[1], Target: m[2]})
	}
	return decls
}

// scanNames runs one declaration pattern over the text and returns the
// captured names.
func scanNames(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// inferCategory classifies an alias by, in order: a name-pattern
// substring, a device-hash literal in the target, a quoted device name
// in the target. Unmatched aliases fall back to Unknown.
func (d *Data) inferCategory(decl aliasDecl) string {
	lower := strings.ToLower(decl.Name)
	patterns := make([]string, 0, len(d.NamePatterns))
	for pattern := range d.NamePatterns {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			return d.NamePatterns[pattern]
		}
	}
	for _, lit := range hashLiteralRe.FindAllString(decl.Target, -1) {
		hash, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			continue
		}
		if category, ok := d.DeviceHashes[int32(hash)]; ok {
			return category
		}
	}
	for _, m := range quotedNameRe.FindAllStringSubmatch(decl.Target, -1) {
		if category, ok := d.DeviceNames[m[1]]; ok {
			return category
		}
	}
	return Unknown
}

// properties returns the sorted property list for a category, falling
// back to the Unknown list.
func (d *Data) properties(category string) []string {
	props, ok := d.Properties[category]
	if !ok {
		props = d.Properties[Unknown]
	}
	out := make([]string, len(props))
	copy(out, props)
	return out
}

// inComment reports whether the column sits after a comment marker.
// Quoted strings are tracked so a '#' inside one does not start a
// comment.
func inComment(line string, col int) bool {
	inString := false
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		switch r {
		case '"':
			inString = !inString
		case '#':
			if !inString {
				return true
			}
		}
		i++
	}
	return false
}

// isDeviceToken reports whether the token is a raw device or register
// reference like d0, db or r15.
func isDeviceToken(token string) bool {
	return deviceTokenRe.MatchString(token)
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// wordBefore returns the identifier run ending at col in line.
func wordBefore(line string, col int) string {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	start := col
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	return string(runes[start:col])
}
