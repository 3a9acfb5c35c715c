package main

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/database"
	"github.com/forgo/gradproj/internal/repository"
	"github.com/forgo/gradproj/internal/service"
	"github.com/forgo/gradproj/internal/table"
	"github.com/forgo/gradproj/internal/transcript"
	"github.com/forgo/gradproj/migrations"
)

// newStore builds a table store; sheet selects the XLSX worksheet
func newStore(sheet string) *table.Store {
	var opts []table.StoreOption
	if sheet != "" {
		opts = append(opts, table.WithSheet(sheet))
	}
	return table.NewStore(afs.New(), opts...)
}

// openArchive connects to SurrealDB and applies migrations. It returns a nil
// repository when archiving is disabled.
func openArchive(ctx context.Context, c *config.Config) (*repository.RunRepository, func(), error) {
	if !c.Archive.Enabled {
		return nil, func() {}, nil
	}

	db := database.NewSurrealDB(database.Config{
		Host:      c.Archive.Host,
		Port:      c.Archive.Port,
		User:      c.Archive.User,
		Password:  c.Archive.Password,
		Namespace: c.Archive.Namespace,
		Database:  c.Archive.Database,
	})
	if err := db.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = db.Close() }

	if err := migrations.Apply(ctx, db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to prepare archive: %w", err)
	}

	logger.Info("connected to archive",
		zap.String("host", c.Archive.Host),
		zap.String("namespace", c.Archive.Namespace),
		zap.String("database", c.Archive.Database))
	return repository.NewRunRepository(db), closeDB, nil
}

func newTranscriptService(c *config.Config) (*service.TranscriptService, error) {
	return service.NewTranscriptService(service.TranscriptServiceConfig{
		Store:     newStore(""),
		Extractor: transcript.NewPDFExtractor(),
		Logger:    logger.Named("transcripts"),
		Settings:  c.Transcripts,
	})
}

func newAllocationService(c *config.Config, runs *repository.RunRepository) (*service.AllocationService, error) {
	sc := service.AllocationServiceConfig{
		Store:    newStore(""),
		Logger:   logger.Named("allocate"),
		Settings: c.Allocation,
	}
	if runs != nil {
		sc.Runs = runs
	}
	return service.NewAllocationService(sc)
}

func newSplitService(c *config.Config) (*service.SplitService, error) {
	return service.NewSplitService(service.SplitServiceConfig{
		Store:    newStore(c.Split.Sheet),
		Logger:   logger.Named("split"),
		Settings: c.Split,
	})
}
