package gradebook

import (
	"fmt"
	"strings"
	"unicode"
)

// StudentCode derives a roster code from the class section and a 1-based
// sequence number: the first three non-space section characters uppercased,
// followed by the number zero-padded to four digits ("STEM A", 7 -> "STE0007").
// Sections shorter than three characters use whatever is available.
func StudentCode(section string, seq int) string {
	prefix := make([]rune, 0, 3)
	for _, r := range section {
		if unicode.IsSpace(r) {
			continue
		}
		prefix = append(prefix, r)
		if len(prefix) == 3 {
			break
		}
	}
	return fmt.Sprintf("%s%04d", strings.ToUpper(string(prefix)), seq)
}

// NextStudentCodes allocates codes for a batch of new students. The sequence
// starts once from the current roster size so duplicate codes cannot be
// produced within the batch.
func NextStudentCodes(section string, rosterSize, count int) []string {
	codes := make([]string, count)
	for i := 0; i < count; i++ {
		codes[i] = StudentCode(section, rosterSize+i+1)
	}
	return codes
}
