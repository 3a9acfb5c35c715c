package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/model"
)

func transcriptText(id, gpa string) string {
	return fmt.Sprintf(`Faculty of Engineering
Student ID: %s
Term 1
Cumulative Credit Hours: 18 Cumulative Course Points: 60.0 Cumulative GPA: 3.33
Term 8
Cumulative Credit Hours: 160 Cumulative Course Points: 512.5 Cumulative GPA: %s
Passed Hours: 158
Training Weeks: 8/8`, id, gpa)
}

func newTestTranscriptService(t *testing.T, store DocumentStore, workers int) *TranscriptService {
	t.Helper()
	settings := config.Default().Transcripts
	settings.Dir = "in"
	settings.Workers = workers
	svc, err := NewTranscriptService(TranscriptServiceConfig{
		Store:     store,
		Extractor: textExtractor{},
		Settings:  settings,
	})
	require.NoError(t, err)
	return svc
}

func TestTranscriptService_Run_ParsesAll(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	for i := 0; i < 25; i++ {
		store.docs[fmt.Sprintf("in/t%02d.pdf", i)] = []byte(transcriptText(fmt.Sprintf("20100%02d", i), "3.21"))
	}
	store.docs["in/readme.txt"] = []byte("ignored")

	batch, err := newTestTranscriptService(t, store, 4).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Transcripts, 25)
	assert.Empty(t, batch.Failures)

	first := batch.Transcripts[0]
	assert.Equal(t, model.Transcript{
		StudentID:              "2010000",
		CumulativeCreditHours:  "160",
		CumulativeCoursePoints: "512.5",
		CumulativeGPA:          "3.21",
		PassedHours:            "158",
		TrainingWeeks:          "8/8",
		Source:                 "t00.pdf",
	}, first)
	for i, tr := range batch.Transcripts {
		assert.Equal(t, fmt.Sprintf("t%02d.pdf", i), tr.Source, "results keep listing order")
	}

	out := store.tables[config.Default().Transcripts.OutputPath]
	require.NotNil(t, out)
	assert.Equal(t, []string{
		"user_id", "cumulative_grades", "cumulative_GPA", "cumulative_credit_hours",
		"passed_hours", "training_weeks", "source_file",
	}, out.Header)
	assert.Equal(t, []string{"2010000", "512.5", "3.21", "160", "158", "8/8", "t00.pdf"}, out.Rows[0])
}

func TestTranscriptService_Run_FailuresDoNotStopBatch(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.docs["in/a.pdf"] = []byte(transcriptText("2011111", "2.90"))
	store.docs["in/b.pdf"] = []byte("CORRUPT")
	store.docs["in/c.pdf"] = []byte("Student ID: 2013333")

	batch, err := newTestTranscriptService(t, store, 2).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Transcripts, 2)
	assert.Equal(t, "a.pdf", batch.Transcripts[0].Source)
	assert.Equal(t, "c.pdf", batch.Transcripts[1].Source)
	assert.False(t, batch.Transcripts[1].Complete())
	assert.Equal(t, model.NotFound, batch.Transcripts[1].CumulativeGPA)

	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "b.pdf", batch.Failures[0].Source)
	assert.Contains(t, batch.Failures[0].Error, "malformed xref")
}

func TestTranscriptService_Run_EmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := newTestTranscriptService(t, newMemStore(), 2).Run(context.Background())
	assert.True(t, errors.Is(err, ErrNoDocuments))
}

func TestTranscriptService_Run_Cancelled(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.docs["in/a.pdf"] = []byte(transcriptText("2011111", "2.90"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestTranscriptService(t, store, 1).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.written)
}

func TestTranscriptService_Run_WriteFailure(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.docs["in/a.pdf"] = []byte(transcriptText("2011111", "2.90"))
	store.failWrite["parsed_transcripts.csv"] = true

	_, err := newTestTranscriptService(t, store, 1).Run(context.Background())
	assert.ErrorIs(t, err, errDisk)
}
