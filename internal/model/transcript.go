package model

// NotFound marks a transcript field absent from the document text
const NotFound = "Not Found"

// Transcript holds the final cumulative figures scraped from one transcript
type Transcript struct {
	StudentID              string `json:"user_id"`
	CumulativeCreditHours  string `json:"cumulative_credit_hours"`
	CumulativeCoursePoints string `json:"cumulative_grades"`
	CumulativeGPA          string `json:"cumulative_GPA"`
	PassedHours            string `json:"passed_hours"`
	TrainingWeeks          string `json:"training_weeks"`
	Source                 string `json:"source_file"`
}

// Complete reports whether every field was found
func (t Transcript) Complete() bool {
	for _, v := range []string{
		t.StudentID,
		t.CumulativeCreditHours,
		t.CumulativeCoursePoints,
		t.CumulativeGPA,
		t.PassedHours,
		t.TrainingWeeks,
	} {
		if v == NotFound {
			return false
		}
	}
	return true
}

// FileFailure records a batch input that could not be processed
type FileFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// TranscriptBatch is the outcome of scraping a directory of transcripts
type TranscriptBatch struct {
	Transcripts []Transcript  `json:"transcripts"`
	Failures    []FileFailure `json:"failures,omitempty"`
}
