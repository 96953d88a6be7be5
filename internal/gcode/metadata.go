package gcode

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/zprint/zprint/internal/model"
)

// Slicer annotation prefixes
const (
	CommentPrefix  = ";"
	CuraTimePrefix = "TIME:"
)

// Default scan limits
const (
	// DefaultMaxLines bounds header scans during gallery refreshes; slicers
	// put their metadata in the first few hundred comment lines.
	DefaultMaxLines = 600
)

// Metadata holds the fields extracted from a G-code file header.
type Metadata struct {
	Material  string
	Colour    string
	PrintTime string
}

// Precompiled patterns for common slicer annotations.
var (
	materialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)filament_settings_id\s*=\s*"?([^";]+)"?`),
		regexp.MustCompile(`(?i)filament_spool_name\s*=\s*"?([^";]+)"?`),
		regexp.MustCompile(`(?i)filament_brand\s*=\s*"?([^";]+)"?`),
		regexp.MustCompile(`(?i)filament_type\s*=\s*"?([^";]+)"?`),
	}
	colourPattern    = regexp.MustCompile(`(?i)filament_colou?r\s*=\s*"?([^";]+)"?`)
	prusaTimePattern = regexp.MustCompile(`(?i)estimated printing time.*=\s*([0-9hms ]+)`)
	durationTokens   = regexp.MustCompile(`(?i)(\d+)\s*([hms])`)
	hexColourPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
	spaceRun         = regexp.MustCompile(`\s+`)

	// Material type acronyms that must never be mistaken for a colour word.
	materialAcronyms = map[string]bool{
		"PLA": true, "ABS": true, "PETG": true, "ASA": true, "TPU": true,
		"PVA": true, "HIPS": true, "NYLON": true, "PET": true, "PC": true,
		"PEI": true, "PETT": true,
	}
)

// ExtractMetadata scans a G-code file's comment lines for material, colour
// and print-time annotations. maxLines bounds the scan when positive;
// otherwise the whole file is streamed until the required fields are found.
// Unreadable files yield whatever was collected so far, never an error.
func ExtractMetadata(path string, maxLines int) Metadata {
	var result Metadata
	if path == "" {
		return result
	}
	file, err := os.Open(path)
	if err != nil {
		return result
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if maxLines > 0 && lineNumber > maxLines {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, CommentPrefix) {
			continue
		}
		body := strings.TrimSpace(line[len(CommentPrefix):])

		if result.PrintTime == "" {
			if t, ok := parseTimeAnnotation(body); ok {
				result.PrintTime = t
				continue
			}
		}
		if result.Material == "" {
			for _, pattern := range materialPatterns {
				if match := pattern.FindStringSubmatch(body); match != nil {
					material := strings.Trim(strings.TrimSpace(match[1]), `"`)
					if material != "" {
						result.Material = material
						break
					}
				}
			}
		}
		if result.Colour == "" {
			if match := colourPattern.FindStringSubmatch(body); match != nil {
				colour := strings.Trim(strings.TrimSpace(match[1]), `"`)
				if colour != "" {
					result.Colour = colour
				}
			}
		}

		if result.Material != "" && result.PrintTime != "" {
			break
		}
	}

	refineColour(&result)
	return result
}

// parseTimeAnnotation recognizes Cura ";TIME:<seconds>" and PrusaSlicer
// "; estimated printing time ... = 1h 2m 3s" comment bodies.
func parseTimeAnnotation(body string) (string, bool) {
	upper := strings.ToUpper(body)
	if strings.HasPrefix(upper, CuraTimePrefix) {
		value := strings.TrimSpace(body[len(CuraTimePrefix):])
		if secs, err := strconv.ParseFloat(value, 64); err == nil {
			return model.FormatDuration(int(secs)), true
		}
		return "", false
	}

	match := prusaTimePattern.FindStringSubmatch(body)
	if match == nil {
		return "", false
	}
	duration := strings.TrimSpace(match[1])
	tokenMatches := durationTokens.FindAllStringSubmatch(duration, -1)
	if len(tokenMatches) == 0 {
		return duration, true
	}
	tokens := make([]model.DurationToken, 0, len(tokenMatches))
	for _, tm := range tokenMatches {
		amount, _ := strconv.Atoi(tm[1])
		tokens = append(tokens, model.DurationToken{Amount: amount, Unit: strings.ToLower(tm[2])})
	}
	return model.NormalizeDurationTokens(tokens), true
}

// refineColour derives a colour from the material's trailing word when the
// slicer only reported a hex value (or nothing), and strips a colour token
// embedded in the material name, e.g. "Prusament PLA Galaxy Black" + colour
// "Black" -> material "Prusament PLA Galaxy".
func refineColour(meta *Metadata) {
	if meta.Material != "" {
		tokens := strings.Fields(meta.Material)
		if len(tokens) > 0 {
			candidate := tokens[len(tokens)-1]
			if isColourWord(candidate) {
				existing := strings.TrimSpace(meta.Colour)
				if existing == "" || hexColourPattern.MatchString(strings.TrimPrefix(existing, "0x")) {
					meta.Colour = candidate
				}
			}
		}
	}

	colour := strings.Trim(strings.TrimSpace(meta.Colour), `"`)
	if colour == "" || meta.Material == "" {
		return
	}
	if !strings.Contains(strings.ToLower(meta.Material), strings.ToLower(colour)) {
		return
	}
	pattern, err := regexp.Compile(`(?i)\s*` + regexp.QuoteMeta(colour) + `\b`)
	if err != nil {
		return
	}
	cleaned := strings.TrimSpace(spaceRun.ReplaceAllString(pattern.ReplaceAllString(meta.Material, ""), " "))
	if cleaned != "" {
		meta.Material = cleaned
	}
}

// isColourWord reports whether a trailing material token looks like a colour
// name rather than a material acronym or a measurement.
func isColourWord(token string) bool {
	if len(token) <= 2 {
		return false
	}
	for _, r := range token {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return !materialAcronyms[strings.ToUpper(token)]
}
