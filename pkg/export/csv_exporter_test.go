package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsColumnOrder(t *testing.T) {
	dataset := Dataset{Headers: []string{"Student Code", "Name", "Quiz 1 (100)", "Term Average"}}
	dataset.AddRow("STE0001", "Alice Smith", "85", "85%")
	dataset.AddRow("STE0002", "Bob Jones")

	out, err := NewCSVExporter().Render(dataset)
	require.NoError(t, err)

	assert.Equal(t,
		"Student Code,Name,Quiz 1 (100),Term Average\n"+
			"STE0001,Alice Smith,85,85%\n"+
			"STE0002,Bob Jones,,\n",
		string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestCSVRenderRejectsOverwideRow(t *testing.T) {
	dataset := Dataset{Headers: []string{"Name"}, Rows: [][]string{{"Alice Smith", "extra"}}}
	_, err := NewCSVExporter().Render(dataset)
	require.Error(t, err)
}
