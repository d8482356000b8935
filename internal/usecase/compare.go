package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/syntax"
)

// ErrEmptyTarget is returned for a compare target without a path.
var ErrEmptyTarget = errors.New("compare target has no path")

// CompareTarget is one project of a getter comparison.
type CompareTarget struct {
	Path  string
	Label string
}

// ParseCompareTarget parses "path=label". Without a label the base name of
// the path is used.
func ParseCompareTarget(arg string) (CompareTarget, error) {
	path, label, found := strings.Cut(arg, "=")
	path = strings.TrimSpace(path)
	if path == "" {
		return CompareTarget{}, fmt.Errorf("%w: %q", ErrEmptyTarget, arg)
	}

	label = strings.TrimSpace(label)
	if !found || label == "" {
		label = filepath.Base(path)
	}

	return CompareTarget{Path: path, Label: label}, nil
}

// GetterStats are the property getter counts of one compared project.
type GetterStats struct {
	Label                         string
	Vals                          int
	WithGetter                    int
	WithGetterExpressionBody      int
	OverridesWithGetter           int
	OverridesWithGetterExprBodies int
}

// Comparer analyzes several projects side by side, each in its own session.
type Comparer struct {
	parser      syntax.Parser
	testDataDir string
	limit       int
	logger      *slog.Logger
}

// NewComparer creates a new Comparer instance. limit bounds how many
// projects are analyzed at once.
func NewComparer(parser syntax.Parser, testDataDir string, limit int, logger *slog.Logger) *Comparer {
	if limit < 1 {
		limit = 1
	}

	return &Comparer{
		parser:      parser,
		testDataDir: testDataDir,
		limit:       limit,
		logger:      logger,
	}
}

// Compare analyzes every target concurrently. Rows come back in target order.
func (c *Comparer) Compare(ctx context.Context, targets []CompareTarget) ([]GetterStats, error) {
	rows := make([]GetterStats, len(targets))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.limit)

	for i, target := range targets {
		eg.Go(func() error {
			c.logger.Info("started working on project", "label", target.Label, "path", target.Path)

			session := domain.NewSession(true)
			crawler := NewCrawler(c.parser, session, c.testDataDir, c.logger)
			if err := crawler.Analyze(egCtx, target.Path); err != nil {
				return fmt.Errorf("failed to analyze %s: %w", target.Label, err)
			}

			rows[i] = getterStats(target.Label, session)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func getterStats(label string, s *domain.Session) GetterStats {
	return GetterStats{
		Label:                         label,
		Vals:                          s.Vals.Count,
		WithGetter:                    s.ValsWithGetter.Count,
		WithGetterExpressionBody:      s.ValsWithGetterExpressionBody.Count,
		OverridesWithGetter:           s.OverrideValsWithGetter.Count,
		OverridesWithGetterExprBodies: s.OverrideValsWithGetterExpressionBody.Count,
	}
}

// WriteComparison renders rows as a markdown table.
func WriteComparison(w io.Writer, rows []GetterStats) error {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{
		"Repo",
		"Total val's",
		"With getter",
		"% w/expression body",
		"Overrides with getter",
		"% overrides w/expression body",
	})

	for _, r := range rows {
		tbl.AppendRow(table.Row{
			r.Label,
			r.Vals,
			r.WithGetter,
			percent(r.WithGetter, r.WithGetterExpressionBody),
			r.OverridesWithGetter,
			percent(r.OverridesWithGetter, r.OverridesWithGetterExprBodies),
		})
	}

	_, err := fmt.Fprintln(w, tbl.RenderMarkdown())

	return err
}

// percent formats part as a share of whole, followed by part itself.
func percent(whole, part int) string {
	if whole == 0 {
		return fmt.Sprintf("%.2f%% (%d)", 0.0, part)
	}

	return fmt.Sprintf("%.2f%% (%d)", 100*float64(part)/float64(whole), part)
}
