package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/model"
	"github.com/forgo/gradproj/internal/splitter"
	"github.com/forgo/gradproj/internal/table"
)

// SplitStore reads the input table and writes one table per group
type SplitStore interface {
	TableStore
	EnsureDir(ctx context.Context, dir string) error
}

// SplitService runs the split job
type SplitService struct {
	store    SplitStore
	logger   *zap.Logger
	settings config.SplitConfig
}

// SplitServiceConfig holds configuration for the split service
type SplitServiceConfig struct {
	Store    SplitStore
	Logger   *zap.Logger
	Settings config.SplitConfig
}

// NewSplitService creates a new split service
func NewSplitService(cfg SplitServiceConfig) (*SplitService, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &SplitService{
		store:    cfg.Store,
		logger:   cfg.Logger,
		settings: cfg.Settings,
	}, nil
}

// Run writes one file per distinct value of the configured column. A file
// that cannot be written is logged and recorded; the remaining groups are
// still written and the failures are returned joined with ErrPartialBatch.
func (s *SplitService) Run(ctx context.Context) (*model.SplitReport, error) {
	cfg := s.settings

	t, err := s.store.Read(ctx, cfg.InputPath)
	if err != nil {
		return nil, err
	}
	groups, blank, err := splitter.Split(t, cfg.Column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.InputPath, err)
	}
	if blank > 0 {
		s.logger.Warn("rows without a group value skipped",
			zap.String("column", cfg.Column),
			zap.Int("rows", blank))
	}

	if err := s.store.EnsureDir(ctx, cfg.OutputDir); err != nil {
		return nil, err
	}

	report := &model.SplitReport{
		Groups:      make([]model.SplitGroup, 0, len(groups)),
		BlankValues: blank,
	}
	names := splitter.Plan(groups, "."+cfg.Format)

	var errs []error
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		location := table.Join(cfg.OutputDir, names[i])
		if err := s.store.Write(ctx, location, g.Table); err != nil {
			s.logger.Error("failed to write group",
				zap.String("value", g.Value),
				zap.String("file", names[i]),
				zap.Error(err))
			report.Failures = append(report.Failures, model.FileFailure{Source: names[i], Error: err.Error()})
			errs = append(errs, err)
			continue
		}
		report.Groups = append(report.Groups, model.SplitGroup{
			Value: g.Value,
			File:  names[i],
			Rows:  g.Table.Len(),
		})
		s.logger.Debug("wrote group", zap.String("value", g.Value), zap.String("file", names[i]), zap.Int("rows", g.Table.Len()))
	}

	s.logger.Info("split complete",
		zap.String("column", cfg.Column),
		zap.Int("files", len(report.Groups)),
		zap.Int("failed", len(report.Failures)),
		zap.String("output_dir", cfg.OutputDir))

	if len(errs) > 0 {
		return report, errors.Join(append([]error{ErrPartialBatch}, errs...)...)
	}
	return report, nil
}
