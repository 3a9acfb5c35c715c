package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractor_RejectsNonPDF(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty":     {},
		"plain":     []byte("Student ID: 2019001\nCumulative GPA 3.50\n"),
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<<"),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			text, err := NewPDFExtractor().ExtractText(data)
			require.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestPDFExtractor_TextLayerFeedsParse(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "transcript_2002296.pdf"))
	require.NoError(t, err)

	text, err := NewPDFExtractor().ExtractText(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Student ID: 2002296\n")

	got := Parse(text, "transcript_2002296.pdf")
	assert.Equal(t, "2002296", got.StudentID)
	assert.Equal(t, "138", got.CumulativeCreditHours)
	assert.Equal(t, "452.25", got.CumulativeCoursePoints)
	assert.Equal(t, "3.28", got.CumulativeGPA)
	assert.Equal(t, "138", got.PassedHours)
	assert.Equal(t, "4/8", got.TrainingWeeks)
	assert.True(t, got.Complete())
}
