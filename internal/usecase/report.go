package usecase

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/ktrawler/internal/config"
	"github.com/naka-gawa/ktrawler/internal/domain"
)

const (
	chartHeight  = "600px"
	chartWidth   = "1400px"
	xAxisRotate  = 60
	chartTitle   = "Kotlin construct usage"
	countsSeries = "Count"
)

// Reporter renders a finished session.
type Reporter struct {
	format string
	color  bool
}

// NewReporter creates a reporter for one of the config.Format* names.
func NewReporter(format string, colored bool) (*Reporter, error) {
	if err := config.ValidateFormat(format); err != nil {
		return nil, err
	}

	return &Reporter{format: format, color: colored}, nil
}

// Write renders s to w.
func (r *Reporter) Write(w io.Writer, s *domain.Session) error {
	switch r.format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.Summary()); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}

		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.Summary()); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}

		return enc.Close()
	case config.FormatHTML:
		return r.writeChart(w, s)
	default:
		return r.writeText(w, s)
	}
}

func (r *Reporter) writeText(w io.Writer, s *domain.Session) error {
	header := color.New(color.Bold)
	if r.color {
		header.EnableColor()
	} else {
		header.DisableColor()
	}

	if _, err := header.Fprintf(w, "Repositories analyzed: %s\n", humanize.Comma(int64(s.RepositoriesAnalyzed))); err != nil {
		return err
	}

	if _, err := header.Fprintf(w, "Files analyzed: %s\n", humanize.Comma(int64(s.FilesAnalyzed))); err != nil {
		return err
	}

	if _, err := header.Fprintf(w, "Lines analyzed: %s\n", humanize.Comma(int64(s.LinesAnalyzed))); err != nil {
		return err
	}

	if len(s.LinesPerFile) > 0 {
		mean, err := stats.Mean(s.LinesPerFile)
		if err != nil {
			return fmt.Errorf("failed to compute mean lines per file: %w", err)
		}

		median, err := stats.Median(s.LinesPerFile)
		if err != nil {
			return fmt.Errorf("failed to compute median lines per file: %w", err)
		}

		if _, err := fmt.Fprintf(w, "Lines per file: mean %.1f, median %.1f\n", mean, median); err != nil {
			return err
		}
	}

	for _, c := range s.Counters() {
		if _, err := fmt.Fprintf(w, "%s: %d in %d projects\n", c.Name, c.Count, c.ProjectCount()); err != nil {
			return err
		}

		for _, u := range c.Usages {
			if _, err := fmt.Fprintf(w, "  Project: %s; path: %s:%d\n", u.Project, u.File, u.Line); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Reporter) writeChart(w io.Writer, s *domain.Session) error {
	counters := s.Counters()
	labels := make([]string, 0, len(counters))
	data := make([]opts.BarData, 0, len(counters))

	for _, c := range counters {
		labels = append(labels, c.Name)
		data = append(data, opts.BarData{Value: c.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title: chartTitle,
			Subtitle: fmt.Sprintf("%s repositories, %s files, %s lines",
				humanize.Comma(int64(s.RepositoriesAnalyzed)),
				humanize.Comma(int64(s.FilesAnalyzed)),
				humanize.Comma(int64(s.LinesAnalyzed))),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate:   xAxisRotate,
				Interval: "0",
			},
		}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries(countsSeries, data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	return nil
}
