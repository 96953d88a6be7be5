package gcode

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filename token separators
const (
	TokenSeparator = "_"
)

// FilenameInfo holds the fields recovered from a slicer export filename
// following the "Name_Tokens_1h30m_Material_Colour.gcode" convention.
type FilenameInfo struct {
	Name      string
	Material  string
	Colour    string
	PrintTime string
}

var timeTokenPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)

// ParseFilename recovers model name, print time, material and colour from a
// G-code filename. Everything hinges on locating the h/m time token: without
// one the filename carries no recognizable convention and the zero value is
// returned.
func ParseFilename(path string) FilenameInfo {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var tokens []string
	for _, tok := range strings.Split(base, TokenSeparator) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return FilenameInfo{}
	}

	timeIndex := -1
	for idx, token := range tokens {
		lowered := strings.ToLower(token)
		if timeTokenPattern.MatchString(lowered) && strings.ContainsAny(lowered, "0123456789") {
			timeIndex = idx
			break
		}
	}
	if timeIndex < 0 {
		return FilenameInfo{}
	}

	info := FilenameInfo{
		Name:      cleanTokens(tokens[:timeIndex]),
		PrintTime: formatTimeToken(tokens[timeIndex]),
	}

	trailing := tokens[timeIndex+1:]
	if len(trailing) > 1 {
		info.Colour = cleanTokens(trailing[len(trailing)-1:])
		info.Material = cleanTokens(trailing[:len(trailing)-1])
	} else {
		info.Material = cleanTokens(trailing)
	}
	return info
}

// cleanTokens joins tokens with spaces, expanding hyphens into spaces.
func cleanTokens(parts []string) string {
	pieces := make([]string, 0, len(parts))
	for _, part := range parts {
		pieces = append(pieces, strings.ReplaceAll(part, "-", " "))
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(strings.Join(pieces, " "), " "))
}

// formatTimeToken rewrites "1h30m"-style tokens into the display form used
// everywhere else ("1h30m" stays compact; bare tokens pass through).
func formatTimeToken(token string) string {
	match := timeTokenPattern.FindStringSubmatch(strings.ToLower(token))
	if match == nil {
		return token
	}
	var out string
	if match[1] != "" {
		out += match[1] + "h"
	}
	if match[2] != "" {
		out += match[2] + "m"
	}
	if out == "" {
		return token
	}
	return out
}
