package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgo/gradproj/internal/model"
)

const sampleTranscript = `Ain Shams University
Faculty of Engineering
Student ID: 2002296
Name: Sample Student

Fall 2023
Cumulative Credit Hours: 120
Cumulative Course Points: 380.5
Cumulative GPA: 3.17

Spring 2024
Cumulative Credit Hours: 138
Cumulative Course Points:
452.25
Cumulative GPA: 3.28
Passed Hours: 138
Training Weeks: 4/8
Issued Via portal`

func TestParse_TakesLastCumulativeBlock(t *testing.T) {
	t.Parallel()

	got := Parse(sampleTranscript, "credit_transcript_2002296.pdf")

	assert.Equal(t, model.Transcript{
		StudentID:              "2002296",
		CumulativeCreditHours:  "138",
		CumulativeCoursePoints: "452.25",
		CumulativeGPA:          "3.28",
		PassedHours:            "138",
		TrainingWeeks:          "4/8",
		Source:                 "credit_transcript_2002296.pdf",
	}, got)
	assert.True(t, got.Complete())
}

func TestParse_MissingFields(t *testing.T) {
	t.Parallel()

	got := Parse("Student ID: 123\nCumulative GPA: 3", "short.pdf")

	assert.Equal(t, model.NotFound, got.StudentID, "ids must have seven digits")
	assert.Equal(t, "3", got.CumulativeGPA)
	assert.Equal(t, model.NotFound, got.CumulativeCreditHours)
	assert.Equal(t, model.NotFound, got.TrainingWeeks)
	assert.False(t, got.Complete())
}

func TestParse_FirstStudentID(t *testing.T) {
	t.Parallel()

	got := Parse("Student ID: 1111111\nStudent ID: 2222222", "x.pdf")
	assert.Equal(t, "1111111", got.StudentID)
}

func TestPDFExtractor_RejectsNonPDF_PlainText(t *testing.T) {
	t.Parallel()

	_, err := NewPDFExtractor().ExtractText([]byte("plain text, not a pdf"))
	assert.Error(t, err)
}
