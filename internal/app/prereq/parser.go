// Package prereq turns free-text prerequisite descriptions into typed,
// confidence-scored ASTs. The parser is regex-tier by design: it extracts
// dependencies only when the text names specific course codes and rejects
// vague background requirements, trading recall for precision. Downstream
// consumers discount low-certainty results through the confidence score.
package prereq

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yigit/gradpath/internal/app/models"
	"github.com/yigit/gradpath/internal/pkg/logger"
)

// Result is what Parse always returns. Err is populated only on an
// internal failure; a vague or empty input is not a failure and yields a
// nil AST with an empty Err.
type Result struct {
	AST        *models.PrereqAST `json:"ast"`
	Confidence float64           `json:"confidence"`
	Tokens     []string          `json:"tokens"`
	Err        string            `json:"error,omitempty"`
}

// Course code extraction patterns, applied in order. The range pattern
// expands "CS 2110-2112" to one code per integer in the range.
var (
	standardPattern = regexp.MustCompile(`\b([A-Z]{2,5})\s+(\d{3,4})\b`)
	letterPattern   = regexp.MustCompile(`\b([A-Z]{2,5})\s+(\d{3,4}[A-Z])\b`)
	rangePattern    = regexp.MustCompile(`\b([A-Z]{2,5})\s+(\d{3,4})-(\d{3,4})\b`)
)

// Keyword patterns for relationship classification and the canonical
// shapes that earn a confidence bonus.
var (
	orWord  = regexp.MustCompile(`(?i)\bor\b`)
	andWord = regexp.MustCompile(`(?i)\band\b`)

	simplePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*prerequisite:\s*[A-Z]{2,5}\s+\d{3,4}[A-Z]?\s*\.?\s*$`),
		regexp.MustCompile(`(?i)^\s*corequisite:\s*[A-Z]{2,5}\s+\d{3,4}[A-Z]?\s*\.?\s*$`),
		regexp.MustCompile(`^\s*[A-Z]{2,5}\s+\d{3,4}[A-Z]?\s*$`),
	}
)

// Parse extracts a prerequisite AST from raw catalog text. It is a total
// function: it never panics and never fails the caller's pipeline. On any
// internal failure the result carries a nil AST, zero confidence and a
// populated Err.
func Parse(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("text", truncate(text, 50)).Interface("panic", r).Msg("Prerequisite parse failed")
			result = Result{Tokens: []string{}, Err: fmt.Sprintf("parse failed: %v", r)}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Result{Tokens: []string{}}
	}

	codes := ExtractCourseCodes(text)
	if len(codes) == 0 {
		// Background requirement ("some programming experience") with no
		// specific course codes: not expressible as a graph edge.
		return Result{Tokens: []string{}}
	}

	ast := buildAST(text, codes)
	return Result{
		AST:        ast,
		Confidence: calculateConfidence(text, codes),
		Tokens:     codes,
	}
}

// ParseCourse parses a course's prerequisite text and attaches the AST and
// confidence to the course in place. Used at the ingestion boundary.
func ParseCourse(c *models.Course) {
	if c.PrereqText == nil || strings.TrimSpace(*c.PrereqText) == "" {
		c.PrereqAST = nil
		c.PrereqConfidence = nil
		return
	}
	result := Parse(*c.PrereqText)
	c.PrereqAST = result.AST
	if result.AST != nil {
		conf := result.Confidence
		c.PrereqConfidence = &conf
	} else {
		c.PrereqConfidence = nil
	}
}

// ExtractCourseCodes finds specific course codes in text, deduplicated in
// first-seen order across the three pattern families.
func ExtractCourseCodes(text string) []string {
	var codes []string

	for _, m := range standardPattern.FindAllStringSubmatch(text, -1) {
		codes = append(codes, m[1]+" "+m[2])
	}
	for _, m := range letterPattern.FindAllStringSubmatch(text, -1) {
		codes = append(codes, m[1]+" "+m[2])
	}
	for _, m := range rangePattern.FindAllStringSubmatch(text, -1) {
		start, err1 := strconv.Atoi(m[2])
		end, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			continue
		}
		for n := start; n <= end; n++ {
			codes = append(codes, m[1]+" "+strconv.Itoa(n))
		}
	}

	seen := make(map[string]struct{}, len(codes))
	unique := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, code)
	}
	return unique
}

// buildAST classifies the relationship between the named courses and the
// dependent course. Precedence: corequisite language, then explicit
// "prerequisite", then "recommended", then bare or/and grouping, falling
// back to MANDATORY for a single course or unresolvable logic.
func buildAST(text string, codes []string) *models.PrereqAST {
	lower := strings.ToLower(text)

	hasOr := orWord.MatchString(text) && len(codes) > 1
	hasAnd := andWord.MatchString(text) && len(codes) > 1

	var baseType models.RelationshipType
	switch {
	case strings.Contains(lower, "corequisite") || strings.Contains(lower, "concurrent"):
		baseType = models.RelCorequisite
	case strings.Contains(lower, "prerequisite"):
		switch {
		case hasOr:
			baseType = models.RelPrerequisiteOr
		case hasAnd:
			baseType = models.RelPrerequisiteAnd
		default:
			baseType = models.RelPrerequisite
		}
	case strings.Contains(lower, "recommended"):
		switch {
		case hasOr:
			baseType = models.RelRecommendedOr
		case hasAnd:
			baseType = models.RelRecommendedAnd
		default:
			baseType = models.RelRecommended
		}
	case hasOr:
		baseType = models.RelOrGroup
	case hasAnd:
		baseType = models.RelAndGroup
	default:
		baseType = models.RelMandatory
	}

	relType := baseType
	hasPermission := strings.Contains(lower, "permission")
	if hasPermission {
		relType = baseType.WithPermission()
	}

	return &models.PrereqAST{
		Type:          relType,
		Courses:       codes,
		RawText:       strings.TrimSpace(text),
		HasPermission: hasPermission,
		HasEquivalent: strings.Contains(lower, "equivalent"),
		IsRecommended: strings.Contains(lower, "recommended"),
	}
}

// calculateConfidence scores how faithfully the extracted structure
// represents the source text's logic. Starts high because specific course
// codes were found, with deductions for constructs the grammar undermodels.
func calculateConfidence(text string, codes []string) float64 {
	if len(codes) == 0 {
		return 0.0
	}

	lower := strings.ToLower(text)
	confidence := 0.9

	// Nested grouping the flat AST cannot represent.
	if strings.Contains(text, "(") && strings.Contains(text, ")") {
		confidence -= 0.2
	}
	// Conditionally bypassable logic.
	if strings.Contains(lower, "permission") || strings.Contains(lower, "equivalent") {
		confidence -= 0.3
	}
	// Long text usually hides structure the grammar missed.
	if len(text) > 150 {
		confidence -= 0.1
	}

	for _, pattern := range simplePatterns {
		if pattern.MatchString(text) {
			confidence += 0.1
			break
		}
	}

	return math.Max(0.0, math.Min(1.0, confidence))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
