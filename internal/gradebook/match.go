package gradebook

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

// ScoreRow is one parsed line of a score import file.
type ScoreRow struct {
	Identifier string
	ScoreRaw   string
}

// ScoredEntry is a matched, validated row ready for upsert.
type ScoredEntry struct {
	StudentID string
	Score     float64
}

// ImportOutcome reports per-row disposition of a score import. The buckets
// always sum to the input row count: len(Imported)+len(Skipped)+len(Unmatched)
// equals len(rows).
type ImportOutcome struct {
	Imported  []ScoredEntry
	Skipped   []string
	Unmatched []string
}

// MatchScores resolves each row's identifier against the roster by exact
// case-insensitive trimmed match on name or student code. Blank scores are
// skipped; unknown identifiers and unparseable or out-of-range scores land
// in Unmatched. No fuzzy matching: anything short of an exact hit is
// reported back for the caller to fix.
func MatchScores(rows []ScoreRow, roster []models.Student, maxScore float64) ImportOutcome {
	byName := make(map[string]string, len(roster))
	byCode := make(map[string]string, len(roster))
	for _, s := range roster {
		if name := strings.ToLower(strings.TrimSpace(s.Name)); name != "" {
			byName[name] = s.ID
		}
		if code := strings.ToLower(strings.TrimSpace(s.StudentCode)); code != "" {
			byCode[code] = s.ID
		}
	}

	out := ImportOutcome{
		Imported:  make([]ScoredEntry, 0, len(rows)),
		Skipped:   []string{},
		Unmatched: []string{},
	}
	for _, row := range rows {
		ident := strings.ToLower(strings.TrimSpace(row.Identifier))
		studentID, ok := byName[ident]
		if !ok {
			studentID, ok = byCode[ident]
		}
		if !ok {
			out.Unmatched = append(out.Unmatched, row.Identifier)
			continue
		}

		raw := strings.TrimSpace(row.ScoreRaw)
		if raw == "" {
			out.Skipped = append(out.Skipped, row.Identifier)
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || score < 0 || score > maxScore {
			out.Unmatched = append(out.Unmatched, row.Identifier)
			continue
		}
		out.Imported = append(out.Imported, ScoredEntry{StudentID: studentID, Score: score})
	}
	return out
}

var (
	identifierColumnRe = regexp.MustCompile(`(?i)name|student|id`)
	scoreColumnRe      = regexp.MustCompile(`(?i)score|mark|grade|result`)
	emailColumnRe      = regexp.MustCompile(`(?i)mail`)
)

// DetectScoreColumns picks the identifier and score columns from a header
// row by keyword heuristics, falling back to the first two columns when no
// header matches. The second return is false when the file has fewer than
// two columns.
func DetectScoreColumns(headers []string) (identCol, scoreCol int, ok bool) {
	if len(headers) < 2 {
		return 0, 0, false
	}
	identCol, scoreCol = -1, -1
	for i, h := range headers {
		if identCol < 0 && identifierColumnRe.MatchString(h) {
			identCol = i
		}
		if scoreCol < 0 && scoreColumnRe.MatchString(h) && i != identCol {
			scoreCol = i
		}
	}
	if identCol < 0 {
		identCol = 0
	}
	if scoreCol < 0 {
		if identCol == 0 {
			scoreCol = 1
		} else {
			scoreCol = 0
		}
	}
	return identCol, scoreCol, true
}

// DetectRosterColumns picks the name and optional email columns of a student
// import file. Email is -1 when no header looks like one.
func DetectRosterColumns(headers []string) (nameCol, emailCol int, ok bool) {
	if len(headers) == 0 {
		return 0, -1, false
	}
	nameCol, emailCol = -1, -1
	for i, h := range headers {
		if emailCol < 0 && emailColumnRe.MatchString(h) {
			emailCol = i
			continue
		}
		if nameCol < 0 && identifierColumnRe.MatchString(h) {
			nameCol = i
		}
	}
	if nameCol < 0 {
		nameCol = 0
		if emailCol == 0 {
			nameCol = 1
			if len(headers) < 2 {
				return 0, -1, false
			}
		}
	}
	return nameCol, emailCol, true
}
