package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forgo/gradproj/internal/allocator"
	"github.com/forgo/gradproj/internal/config"
	"github.com/forgo/gradproj/internal/model"
	"github.com/forgo/gradproj/internal/table"
)

// ListSeparator joins list values inside a single output cell
const ListSeparator = ";"

// TableStore reads and writes whole tables
type TableStore interface {
	Read(ctx context.Context, location string) (*table.Table, error)
	Write(ctx context.Context, location string, t *table.Table) error
}

// RunRepository archives allocation runs
type RunRepository interface {
	Create(ctx context.Context, run *model.AllocationRun) error
}

// AllocationService runs the allocate job
type AllocationService struct {
	store    TableStore
	runs     RunRepository
	logger   *zap.Logger
	settings config.AllocationConfig
	now      func() time.Time
	newID    func() string
}

// AllocationServiceConfig holds configuration for the allocation service
type AllocationServiceConfig struct {
	Store    TableStore
	Runs     RunRepository // optional; nil disables archiving
	Logger   *zap.Logger
	Settings config.AllocationConfig
	Now      func() time.Time // Default: time.Now
	NewID    func() string    // Default: uuid.NewString
}

// NewAllocationService creates a new allocation service
func NewAllocationService(cfg AllocationServiceConfig) (*AllocationService, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &AllocationService{
		store:    cfg.Store,
		runs:     cfg.Runs,
		logger:   cfg.Logger,
		settings: cfg.Settings,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}, nil
}

// AllocationReport is everything one allocate invocation produced
type AllocationReport struct {
	Run       *model.AllocationRun
	Result    *model.Result
	Rosters   []model.ProjectRoster
	Summaries []model.ProjectSummary
}

// Run reads the inputs, allocates and writes every configured output
func (s *AllocationService) Run(ctx context.Context) (*AllocationReport, error) {
	cfg := s.settings

	users, skipped, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.readProjects(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.readPreferences(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range skipped {
		delete(prefs, id)
	}

	opts := allocator.Options{TieBreak: cfg.TieBreak}
	result, err := allocator.Allocate(users, projects, prefs, opts)
	if err != nil {
		return nil, fmt.Errorf("allocation aborted: %w", err)
	}

	var swap *model.Swap
	if cfg.ImproveOnce {
		improved, best, ok := allocator.ImproveOnce(result, prefs)
		if ok {
			s.logger.Info("applied improving swap",
				zap.String("user_a", best.UserA),
				zap.String("user_b", best.UserB),
				zap.Int("improvement", best.Improvement))
			result, swap = improved, best
		} else {
			s.logger.Info("no improving swap found")
		}
	}

	for _, a := range result.Assignments {
		s.logger.Debug("assigned",
			zap.String("user_id", a.UserID),
			zap.String("project_id", a.ProjectID),
			zap.Int("rank", a.Rank),
			zap.Strings("rejected_before", a.RejectedBefore))
	}
	for _, id := range result.Unassigned {
		s.logger.Debug("no project available", zap.String("user_id", id))
	}

	report := &AllocationReport{
		Result:    result,
		Rosters:   allocator.Rosters(result, projects),
		Summaries: allocator.Summaries(result, projects),
	}
	for _, sum := range report.Summaries {
		fields := []zap.Field{
			zap.String("project_id", sum.ProjectID),
			zap.Int("assigned", sum.Assigned),
			zap.Int("capacity", sum.Capacity),
		}
		if sum.Assigned > 0 {
			fields = append(fields, zap.Float64("mean_score", sum.MeanScore))
		}
		s.logger.Info("project summary", fields...)
	}

	if err := s.writeOutputs(ctx, users, report); err != nil {
		return nil, err
	}

	report.Run = &model.AllocationRun{
		ID:          s.newID(),
		RanOn:       s.now().UTC(),
		TieBreak:    opts.Rule(),
		TotalRank:   allocator.TotalRank(result),
		Fingerprint: allocator.Fingerprint(result),
		Swap:        swap,
		Assignments: result.Assignments,
		Unassigned:  result.Unassigned,
	}
	s.logger.Info("allocation complete",
		zap.String("run_id", report.Run.ID),
		zap.Int("assigned", report.Run.AssignedCount()),
		zap.Int("unassigned", report.Run.UnassignedCount()),
		zap.Int("total_rank", report.Run.TotalRank),
		zap.String("fingerprint", report.Run.Fingerprint))

	if s.runs != nil {
		if err := s.runs.Create(ctx, report.Run); err != nil {
			return nil, fmt.Errorf("failed to archive run %s: %w", report.Run.ID, err)
		}
		s.logger.Info("run archived", zap.String("run_id", report.Run.ID))
	}

	return report, nil
}

// ============================================================================
// Input
// ============================================================================

// readUsers also returns the ids of users dropped as incomplete, whose
// preference rows must be ignored
func (s *AllocationService) readUsers(ctx context.Context) ([]model.User, []string, error) {
	cfg := s.settings
	t, err := s.store.Read(ctx, cfg.UsersPath)
	if err != nil {
		return nil, nil, err
	}
	var skipped []string
	if cfg.SkipIncomplete {
		t, skipped = s.dropIncompleteUsers(t)
	}
	users, err := ParseUsers(t, cfg.UserIDColumn, cfg.ScoreColumn)
	if err != nil {
		return nil, nil, err
	}
	if len(users) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", cfg.UsersPath, ErrNoUsers)
	}
	return users, skipped, nil
}

// dropIncompleteUsers removes rows whose id or score the transcript scraper
// reported as not found
func (s *AllocationService) dropIncompleteUsers(t *table.Table) (*table.Table, []string) {
	cols, err := t.Columns(s.settings.UserIDColumn, s.settings.ScoreColumn)
	if err != nil {
		return t, nil
	}
	var skipped []string
	kept := table.New(t.Header...)
	for i, row := range t.Rows {
		id, score := table.Cell(row, cols[0]), table.Cell(row, cols[1])
		if id == model.NotFound || score == model.NotFound {
			s.logger.Warn("skipping incomplete user",
				zap.Int("row", i+1),
				zap.String("user_id", id),
				zap.String("score", score))
			if id != model.NotFound && id != "" {
				skipped = append(skipped, normalizeID(id))
			}
			continue
		}
		kept.Rows = append(kept.Rows, row)
	}
	return kept, skipped
}

func (s *AllocationService) readProjects(ctx context.Context) ([]model.Project, error) {
	cfg := s.settings
	t, err := s.store.Read(ctx, cfg.ProjectsPath)
	if err != nil {
		return nil, err
	}
	projects, err := ParseProjects(t, cfg.ProjectIDColumn, cfg.CapacityColumn)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.ProjectsPath, ErrNoProjects)
	}
	return projects, nil
}

func (s *AllocationService) readPreferences(ctx context.Context) (model.Preferences, error) {
	cfg := s.settings
	t, err := s.store.Read(ctx, cfg.PreferencesPath)
	if err != nil {
		return nil, err
	}
	return ParsePreferences(t, cfg.UserIDColumn)
}

// ParseUsers reads (id, score) pairs
func ParseUsers(t *table.Table, idColumn, scoreColumn string) ([]model.User, error) {
	cols, err := t.Columns(idColumn, scoreColumn)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}

	users := make([]model.User, 0, t.Len())
	for i, row := range t.Rows {
		id := normalizeID(table.Cell(row, cols[0]))
		if id == "" {
			return nil, model.NewRecordError("users", i+1, idColumn,
				fmt.Errorf("%w: empty user id", model.ErrMalformedRecord))
		}
		raw := table.Cell(row, cols[1])
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, model.NewRecordError("users", i+1, scoreColumn,
				fmt.Errorf("%w: score %q is not a number", model.ErrMalformedRecord, raw))
		}
		users = append(users, model.User{ID: id, Score: score})
	}
	return users, nil
}

// ParseProjects reads (id, capacity) pairs. Capacities and numeric ids may be
// written as integral floats ("3.0") by spreadsheet tools.
func ParseProjects(t *table.Table, idColumn, capacityColumn string) ([]model.Project, error) {
	cols, err := t.Columns(idColumn, capacityColumn)
	if err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}

	projects := make([]model.Project, 0, t.Len())
	for i, row := range t.Rows {
		id := normalizeID(table.Cell(row, cols[0]))
		if id == "" {
			return nil, model.NewRecordError("projects", i+1, idColumn,
				fmt.Errorf("%w: empty project id", model.ErrMalformedRecord))
		}
		raw := table.Cell(row, cols[1])
		capacity, ok := parseCount(raw)
		if !ok {
			return nil, model.NewRecordError("projects", i+1, capacityColumn,
				fmt.Errorf("%w: capacity %q is not an integer", model.ErrMalformedRecord, raw))
		}
		projects = append(projects, model.Project{ID: id, Capacity: capacity})
	}
	return projects, nil
}

// ParsePreferences reads one row per user: the id column followed by ranked
// project columns in header order. Blank cells are skipped, so rank is the
// position among the filled cells.
func ParsePreferences(t *table.Table, idColumn string) (model.Preferences, error) {
	idCol, err := t.Column(idColumn)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	prefs := make(model.Preferences, t.Len())
	for i, row := range t.Rows {
		userID := normalizeID(table.Cell(row, idCol))
		if userID == "" {
			return nil, model.NewRecordError("preferences", i+1, idColumn,
				fmt.Errorf("%w: empty user id", model.ErrMalformedRecord))
		}
		if _, dup := prefs[userID]; dup {
			return nil, model.NewRecordError("preferences", i+1, idColumn,
				fmt.Errorf("%w: %s has two preference rows", model.ErrDuplicateUser, userID))
		}

		list := []string{}
		for c := range t.Header {
			if c == idCol {
				continue
			}
			if projectID := normalizeID(table.Cell(row, c)); projectID != "" {
				list = append(list, projectID)
			}
		}
		prefs[userID] = list
	}
	return prefs, nil
}

// parseCount accepts "3" and "3.0" but not "3.5" or "-"
func parseCount(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// normalizeID strips the ".0" spreadsheet tools append to numeric ids
func normalizeID(id string) string {
	if trimmed, ok := strings.CutSuffix(id, ".0"); ok {
		if _, err := strconv.Atoi(trimmed); err == nil {
			return trimmed
		}
	}
	return id
}

// ============================================================================
// Output
// ============================================================================

func (s *AllocationService) writeOutputs(ctx context.Context, users []model.User, report *AllocationReport) error {
	cfg := s.settings
	outputs := []struct {
		path  string
		build func() *table.Table
	}{
		{cfg.AssignmentsPath, func() *table.Table { return AssignmentsTable(report.Result) }},
		{cfg.RostersPath, func() *table.Table { return RostersTable(report.Rosters) }},
		{cfg.SummaryPath, func() *table.Table { return SummaryTable(report.Summaries) }},
		{cfg.UnassignedPath, func() *table.Table { return UnassignedTable(report.Result, users) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := s.store.Write(ctx, out.path, out.build()); err != nil {
			return err
		}
		s.logger.Info("wrote table", zap.String("path", out.path))
	}
	return nil
}

// AssignmentsTable renders assignments in processing order
func AssignmentsTable(result *model.Result) *table.Table {
	t := table.New("user_id", "score", "project_id", "preference_rank", "previous_preferences")
	for _, a := range result.Assignments {
		t.Append(
			a.UserID,
			formatScore(a.Score),
			a.ProjectID,
			strconv.Itoa(a.Rank),
			strings.Join(a.RejectedBefore, ListSeparator),
		)
	}
	return t
}

// RostersTable renders one row per project
func RostersTable(rosters []model.ProjectRoster) *table.Table {
	t := table.New("project_id", "users")
	for _, r := range rosters {
		t.Append(r.ProjectID, strings.Join(r.UserIDs, ListSeparator))
	}
	return t
}

// SummaryTable renders per-project counts and mean scores. The mean is blank
// for a project nobody was assigned to.
func SummaryTable(summaries []model.ProjectSummary) *table.Table {
	t := table.New("project_id", "capacity", "assigned", "remaining", "mean_score")
	for _, s := range summaries {
		mean := ""
		if s.Assigned > 0 {
			mean = strconv.FormatFloat(s.MeanScore, 'f', 4, 64)
		}
		t.Append(
			s.ProjectID,
			strconv.Itoa(s.Capacity),
			strconv.Itoa(s.Assigned),
			strconv.Itoa(s.Remaining),
			mean,
		)
	}
	return t
}

// UnassignedTable lists users left without a project, in processing order
func UnassignedTable(result *model.Result, users []model.User) *table.Table {
	scores := make(map[string]float64, len(users))
	for _, u := range users {
		scores[u.ID] = u.Score
	}
	t := table.New("user_id", "score")
	for _, id := range result.Unassigned {
		t.Append(id, formatScore(scores[id]))
	}
	return t
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
