package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoaringMaas/edutrack-lms/internal/models"
)

func testRoster() []models.Student {
	return []models.Student{
		{ID: "s1", Name: "alice smith", StudentCode: "STE0001"},
		{ID: "s2", Name: "Bob Jones", StudentCode: "STE0002"},
	}
}

func TestMatchScoresByName(t *testing.T) {
	out := MatchScores([]ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "85"},
	}, testRoster(), 100)

	require.Len(t, out.Imported, 1)
	assert.Equal(t, "s1", out.Imported[0].StudentID)
	assert.Equal(t, float64(85), out.Imported[0].Score)
	assert.Empty(t, out.Skipped)
	assert.Empty(t, out.Unmatched)
}

func TestMatchScoresByCode(t *testing.T) {
	out := MatchScores([]ScoreRow{
		{Identifier: "ste0002", ScoreRaw: "42.5"},
	}, testRoster(), 100)

	require.Len(t, out.Imported, 1)
	assert.Equal(t, "s2", out.Imported[0].StudentID)
	assert.Equal(t, 42.5, out.Imported[0].Score)
}

func TestMatchScoresUnmatched(t *testing.T) {
	out := MatchScores([]ScoreRow{
		{Identifier: "Nobody", ScoreRaw: "50"},
	}, testRoster(), 100)

	assert.Empty(t, out.Imported)
	assert.Equal(t, []string{"Nobody"}, out.Unmatched)
}

func TestMatchScoresBlankIdentifierUnmatched(t *testing.T) {
	roster := append(testRoster(), models.Student{ID: "s3", Name: "   ", StudentCode: ""})
	out := MatchScores([]ScoreRow{
		{Identifier: "", ScoreRaw: "50"},
		{Identifier: "   ", ScoreRaw: "60"},
	}, roster, 100)

	assert.Empty(t, out.Imported)
	assert.Len(t, out.Unmatched, 2)
}

func TestMatchScoresBlankSkipped(t *testing.T) {
	out := MatchScores([]ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "  "},
	}, testRoster(), 100)

	assert.Empty(t, out.Imported)
	assert.Equal(t, []string{"Alice Smith"}, out.Skipped)
	assert.Empty(t, out.Unmatched)
}

func TestMatchScoresInvalidValues(t *testing.T) {
	rows := []ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "abc"},
		{Identifier: "Bob Jones", ScoreRaw: "-1"},
		{Identifier: "Alice Smith", ScoreRaw: "101"},
	}
	out := MatchScores(rows, testRoster(), 100)

	assert.Empty(t, out.Imported)
	assert.Len(t, out.Unmatched, 3)
}

func TestMatchScoresCountInvariant(t *testing.T) {
	rows := []ScoreRow{
		{Identifier: "Alice Smith", ScoreRaw: "85"},
		{Identifier: "ste0002", ScoreRaw: ""},
		{Identifier: "Nobody", ScoreRaw: "50"},
		{Identifier: "Bob Jones", ScoreRaw: "999"},
		{Identifier: "  alice smith  ", ScoreRaw: "100"},
	}
	out := MatchScores(rows, testRoster(), 100)

	assert.Equal(t, len(rows), len(out.Imported)+len(out.Skipped)+len(out.Unmatched))
	assert.Len(t, out.Imported, 2)
	assert.Len(t, out.Skipped, 1)
	assert.Len(t, out.Unmatched, 2)
}

func TestDetectScoreColumns(t *testing.T) {
	ident, score, ok := DetectScoreColumns([]string{"Student Name", "Quiz Score"})
	require.True(t, ok)
	assert.Equal(t, 0, ident)
	assert.Equal(t, 1, score)

	ident, score, ok = DetectScoreColumns([]string{"Result", "ID"})
	require.True(t, ok)
	assert.Equal(t, 1, ident)
	assert.Equal(t, 0, score)

	// no recognizable headers falls back to first two columns
	ident, score, ok = DetectScoreColumns([]string{"col_a", "col_b"})
	require.True(t, ok)
	assert.Equal(t, 0, ident)
	assert.Equal(t, 1, score)

	_, _, ok = DetectScoreColumns([]string{"only"})
	assert.False(t, ok)
}

func TestDetectRosterColumns(t *testing.T) {
	name, email, ok := DetectRosterColumns([]string{"Full Name", "E-mail"})
	require.True(t, ok)
	assert.Equal(t, 0, name)
	assert.Equal(t, 1, email)

	name, email, ok = DetectRosterColumns([]string{"whatever"})
	require.True(t, ok)
	assert.Equal(t, 0, name)
	assert.Equal(t, -1, email)
}

func TestStudentCode(t *testing.T) {
	assert.Equal(t, "STE0007", StudentCode("STEM A", 7))
	assert.Equal(t, "AB0001", StudentCode("ab", 1))
	assert.Equal(t, "0012", StudentCode("", 12))
}

func TestNextStudentCodes(t *testing.T) {
	codes := NextStudentCodes("Diamond", 2, 3)
	assert.Equal(t, []string{"DIA0003", "DIA0004", "DIA0005"}, codes)
}
