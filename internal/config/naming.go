package config

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Stage naming convention. LRT stages are "L" plus digits (L30, L39, L104).
// Lig stages pair with an LRT stage and are named "A" plus the same two-digit
// number, so the pattern is A with a first digit of 3–9 and exactly one more
// digit: it matches A30–A99 and excludes vehicle names like A0, A01, A1.
var (
	lrtNamePattern = regexp.MustCompile(`^L\d+$`)
	ligNamePattern = regexp.MustCompile(`^A[3-9]\d$`)
)

// IsLRTName reports whether a stage name follows the LRT naming convention.
func IsLRTName(name string) bool {
	return lrtNamePattern.MatchString(name)
}

// IsLigName reports whether a stage name follows the Lig naming convention.
func IsLigName(name string) bool {
	return ligNamePattern.MatchString(name)
}

// endMarkers are the spellings (lowercased) that mean "no stages follow".
var endMarkers = map[string]bool{
	"":                true,
	"end":             true,
	"end of skeleton": true,
}

// ParseStageSeq splits a dash- or arrow-separated stage sequence such as
// "B-C-A0" or "A0 - B - C - A0" into its stage names. A blank string and the
// case-insensitive literals "end of skeleton" and "end" yield nil.
func ParseStageSeq(raw string) []string {
	s := strings.TrimSpace(raw)
	if endMarkers[strings.ToLower(s)] {
		return nil
	}
	var seq []string
	for _, part := range strings.Split(strings.ReplaceAll(s, "→", "-"), "-") {
		if p := strings.TrimSpace(part); p != "" {
			seq = append(seq, p)
		}
	}
	return seq
}

var (
	siteCodePattern = regexp.MustCompile(`[A-Z]{2}\d{2}`)
	nonWordPattern  = regexp.MustCompile(`\W`)
)

// DeriveName extracts a junction name from a config file path. An embedded
// site code like "KC04" wins; otherwise the sanitized file stem is used.
func DeriveName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if code := siteCodePattern.FindString(stem); code != "" {
		return code
	}
	return nonWordPattern.ReplaceAllString(stem, "_")
}
