package service

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/model"
	"github.com/forgo/gradproj/internal/table"
	"github.com/forgo/gradproj/internal/transcript"
)

// DocumentStore lists and downloads batch inputs and writes the result table
type DocumentStore interface {
	List(ctx context.Context, dir, ext string) ([]string, error)
	Download(ctx context.Context, location string) ([]byte, error)
	Write(ctx context.Context, location string, t *table.Table) error
}

// TextExtractor turns a document into plain text
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// TranscriptService runs the transcripts job
type TranscriptService struct {
	store     DocumentStore
	extractor TextExtractor
	logger    *zap.Logger
	settings  config.TranscriptConfig
}

// TranscriptServiceConfig holds configuration for the transcript service
type TranscriptServiceConfig struct {
	Store     DocumentStore
	Extractor TextExtractor // Default: transcript.NewPDFExtractor()
	Logger    *zap.Logger
	Settings  config.TranscriptConfig
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(cfg TranscriptServiceConfig) (*TranscriptService, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Extractor == nil {
		cfg.Extractor = transcript.NewPDFExtractor()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Settings.Workers <= 0 {
		cfg.Settings.Workers = 1
	}
	return &TranscriptService{
		store:     cfg.Store,
		extractor: cfg.Extractor,
		logger:    cfg.Logger,
		settings:  cfg.Settings,
	}, nil
}

// outcome is one worker's slot; exactly one of the fields is set
type outcome struct {
	transcript *model.Transcript
	failure    *model.FileFailure
}

// Run scrapes every document in the configured directory and writes the
// output table. Files that cannot be read or parsed are recorded as
// failures; the batch continues.
func (s *TranscriptService) Run(ctx context.Context) (*model.TranscriptBatch, error) {
	cfg := s.settings

	urls, err := s.store.List(ctx, cfg.Dir, cfg.Extension)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s files", ErrNoDocuments, cfg.Dir, cfg.Extension)
	}
	s.logger.Info("scraping transcripts",
		zap.String("dir", cfg.Dir),
		zap.Int("files", len(urls)),
		zap.Int("workers", cfg.Workers))

	outcomes := make([]outcome, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, u := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.scrape(gctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &model.TranscriptBatch{Transcripts: []model.Transcript{}}
	for _, o := range outcomes {
		if o.failure != nil {
			batch.Failures = append(batch.Failures, *o.failure)
			continue
		}
		if !o.transcript.Complete() {
			s.logger.Warn("transcript has missing fields", zap.String("source", o.transcript.Source))
		}
		batch.Transcripts = append(batch.Transcripts, *o.transcript)
	}

	if err := s.store.Write(ctx, cfg.OutputPath, TranscriptsTable(batch.Transcripts)); err != nil {
		return nil, err
	}
	s.logger.Info("transcripts complete",
		zap.Int("parsed", len(batch.Transcripts)),
		zap.Int("failed", len(batch.Failures)),
		zap.String("output", cfg.OutputPath))
	return batch, nil
}

func (s *TranscriptService) scrape(ctx context.Context, location string) outcome {
	source := path.Base(location)
	fail := func(err error) outcome {
		s.logger.Error("failed to process transcript", zap.String("source", source), zap.Error(err))
		return outcome{failure: &model.FileFailure{Source: source, Error: err.Error()}}
	}

	data, err := s.store.Download(ctx, location)
	if err != nil {
		return fail(err)
	}
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return fail(err)
	}

	t := transcript.Parse(text, source)
	s.logger.Debug("parsed transcript", zap.String("source", source), zap.String("user_id", t.StudentID))
	return outcome{transcript: &t}
}

// TranscriptsTable renders transcripts in the scraper's column order
func TranscriptsTable(transcripts []model.Transcript) *table.Table {
	t := table.New(
		"user_id",
		"cumulative_grades",
		"cumulative_GPA",
		"cumulative_credit_hours",
		"passed_hours",
		"training_weeks",
		"source_file",
	)
	for _, tr := range transcripts {
		t.Append(
			tr.StudentID,
			tr.CumulativeCoursePoints,
			tr.CumulativeGPA,
			tr.CumulativeCreditHours,
			tr.PassedHours,
			tr.TrainingWeeks,
			tr.Source,
		)
	}
	return t
}
