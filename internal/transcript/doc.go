// Package transcript scrapes final cumulative figures out of academic transcripts.
//
// Extraction is two steps: PDFExtractor turns a PDF document into plain text,
// and Parse pulls the labelled fields out of that text. The student id is the
// first "Student ID:" occurrence; every cumulative field takes its last
// occurrence, since the closing cumulative block follows all term blocks.
// Fields missing from the text are reported as model.NotFound.
package transcript
