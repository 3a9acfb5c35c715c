package transcript

import (
	"regexp"

	"github.com/forgo/gradproj/internal/model"
)

var (
	studentIDPattern     = regexp.MustCompile(`Student ID:\s*(\d{7})`)
	creditHoursPattern   = regexp.MustCompile(`Cumulative Credit Hours:\s*(\d+)`)
	coursePointsPattern  = regexp.MustCompile(`Cumulative Course Points:\s*(\d+\.?\d*)`)
	gpaPattern           = regexp.MustCompile(`Cumulative GPA:\s*(\d+\.?\d*)`)
	passedHoursPattern   = regexp.MustCompile(`Passed Hours:\s*(\d+)`)
	trainingWeeksPattern = regexp.MustCompile(`Training Weeks:\s*(\d+/\d+)`)
)

// Parse extracts the transcript fields from document text
func Parse(text, source string) model.Transcript {
	return model.Transcript{
		StudentID:              first(studentIDPattern, text),
		CumulativeCreditHours:  last(creditHoursPattern, text),
		CumulativeCoursePoints: last(coursePointsPattern, text),
		CumulativeGPA:          last(gpaPattern, text),
		PassedHours:            last(passedHoursPattern, text),
		TrainingWeeks:          last(trainingWeeksPattern, text),
		Source:                 source,
	}
}

func first(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return model.NotFound
	}
	return m[1]
}

func last(re *regexp.Regexp, text string) string {
	all := re.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return model.NotFound
	}
	return all[len(all)-1][1]
}
