package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/syntax"
	"github.com/src-d/enry/v2"
)

// ErrNotDirectory is returned when a project root is not a directory.
var ErrNotDirectory = errors.New("project root is not a directory")

const kotlinLanguage = "Kotlin"

// Crawler walks every Kotlin file of a project and feeds the session counters.
type Crawler struct {
	parser      syntax.Parser
	session     *domain.Session
	testDataDir string
	logger      *slog.Logger
}

// NewCrawler creates a new Crawler instance.
func NewCrawler(parser syntax.Parser, session *domain.Session, testDataDir string, logger *slog.Logger) *Crawler {
	return &Crawler{
		parser:      parser,
		session:     session,
		testDataDir: testDataDir,
		logger:      logger,
	}
}

// Session returns the session the crawler writes to.
func (c *Crawler) Session() *domain.Session {
	return c.session
}

// Analyze counts the constructs of every Kotlin source below root. Only the
// test-data directory and VCS metadata are skipped.
// Unreadable or unparsable files are logged and skipped.
func (c *Crawler) Analyze(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat project %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	c.logger.Info("analyzing repository", "path", root)
	c.session.RepositoriesAnalyzed++

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			c.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)

			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if entry.IsDir() {
			if path != root && c.skipDir(entry.Name()) {
				return fs.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() || enry.GetLanguage(filepath.Base(path), nil) != kotlinLanguage {
			return nil
		}

		c.analyzeFile(ctx, root, path, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk project %s: %w", root, err)
	}

	return nil
}

func (c *Crawler) skipDir(name string) bool {
	return name == ".git" || name == c.testDataDir
}

func (c *Crawler) analyzeFile(ctx context.Context, project, path, rel string) {
	src, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return
	}

	file, err := c.parser.Parse(ctx, path, src)
	if err != nil {
		c.logger.Warn("skipping unparsable file", "path", path, "error", err)
		return
	}

	c.logger.Debug("analyzing file", "path", rel, "lines", file.Lines.Count())
	c.Visit(project, rel, file)
}

// Visit counts the constructs of one parsed file. Usages are recorded against
// project and rel in pre-order, which keeps them in source order.
func (c *Crawler) Visit(project, rel string, file *syntax.File) {
	c.session.FilesAnalyzed++
	c.session.LinesAnalyzed += file.Lines.Count()
	c.session.LinesPerFile = append(c.session.LinesPerFile, float64(file.Lines.Count()))

	v := &visitor{session: c.session, project: project, rel: rel, file: file}

	file.Root.Walk(func(n *syntax.Node) {
		if handle, ok := handlers[n.Kind]; ok {
			handle(v, n)
		}
	})
}
