// Package adapter contains infrastructure adapters for the meowcode CLI.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

const (
	recursiveSuffix = "/..."
	defaultFileMode = 0o644
	tempFilePattern = ".meowcode-*"
)

// DiscoverOptions filters the files returned by SourceFSAdapter.Get.
type DiscoverOptions struct {
	// Include holds doublestar globs matched against the path relative to
	// the walked root. An empty list matches every file.
	Include []string
	// Exclude holds regular expressions matched against the slash separated
	// path as shown to the user.
	Exclude []string
	// UseGitignore skips files matched by the root's .gitignore.
	UseGitignore bool
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on. It hides direct `os` access so the generator can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// Get resolves Go-style path patterns ("./...", "./Assets", "a/File.cs")
	// into a sorted, de-duplicated list of source files.
	Get(ctx context.Context, paths []m.Path, opts DiscoverOptions) ([]m.File, error)

	// ReadDocument loads a file as lines and records its newline convention.
	ReadDocument(ctx context.Context, path m.Path) (m.Document, error)

	// WriteDocument replaces the file content in a single rename so readers
	// never observe a partial write.
	WriteDocument(ctx context.Context, path m.Path, doc m.Document) error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get walks every pattern and collects the files that pass the filters.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, opts DiscoverOptions) ([]m.File, error) {
	if len(paths) == 0 {
		paths = []m.Path{m.Path("." + recursiveSuffix)}
	}

	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}

	collector := &fileCollector{
		opts:     opts,
		excludes: excludes,
		seen:     make(map[string]struct{}),
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := parsePathPattern(string(p))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		// Explicitly named files bypass the include globs.
		if !info.IsDir() {
			collector.addExplicit(root)
			continue
		}

		if err := collector.walk(ctx, root, recursive); err != nil {
			return nil, err
		}
	}

	sort.Slice(collector.files, func(i, j int) bool {
		return collector.files[i].ShortPath < collector.files[j].ShortPath
	})

	slog.Debug("Discovered source files", "count", len(collector.files))

	return collector.files, nil
}

type fileCollector struct {
	opts     DiscoverOptions
	excludes []*regexp.Regexp
	seen     map[string]struct{}
	files    []m.File
}

func (c *fileCollector) walk(ctx context.Context, root string, recursive bool) error {
	var ignore *gitignore.GitIgnore

	if c.opts.UseGitignore {
		ignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(ignorePath); err == nil {
			compiled, err := gitignore.CompileIgnoreFile(ignorePath)
			if err != nil {
				slog.Warn("Failed to read .gitignore", "path", ignorePath, "error", err)
			} else {
				ignore = compiled
			}
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || isHidden(d.Name()) || (ignore != nil && ignore.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}

			return nil
		}

		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		if !c.included(rel) {
			return nil
		}

		c.add(path)

		return nil
	})
}

func (c *fileCollector) included(rel string) bool {
	if len(c.opts.Include) == 0 {
		return true
	}

	for _, pattern := range c.opts.Include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	return false
}

func (c *fileCollector) addExplicit(path string) {
	c.add(path)
}

func (c *fileCollector) add(path string) {
	short := filepath.ToSlash(filepath.Clean(path))

	for _, re := range c.excludes {
		if re.MatchString(short) {
			slog.Debug("Excluded source file", "path", short, "pattern", re.String())
			return
		}
	}

	full, err := filepath.Abs(path)
	if err != nil {
		full = path
	}

	if _, ok := c.seen[full]; ok {
		return
	}

	c.seen[full] = struct{}{}
	c.files = append(c.files, m.File{FullPath: m.Path(full), ShortPath: m.Path(short)})
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

// parsePathPattern splits a Go-style pattern into its root and whether the
// walk descends into sub-directories.
func parsePathPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if strings.HasSuffix(pattern, recursiveSuffix) {
		root := strings.TrimSuffix(pattern, recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// ReadDocument loads the file and splits it into lines.
func (a *LocalSourceFSAdapter) ReadDocument(ctx context.Context, path m.Path) (m.Document, error) {
	if err := ctx.Err(); err != nil {
		return m.Document{}, err
	}

	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ParseDocument(content), nil
}

// ParseDocument splits content into lines and records the terminator of
// each one. The document convention is taken from the first line break; a
// file without one is treated as LF.
func ParseDocument(content []byte) m.Document {
	doc := m.Document{Ending: m.LF}
	if len(content) == 0 {
		return doc
	}

	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		doc.Ending = m.CRLF
	}

	text := string(content)
	if strings.HasSuffix(text, "\n") {
		doc.TrailingNewline = true
		text = strings.TrimSuffix(text, "\n")
	}

	lines := strings.Split(text, "\n")
	endings := make([]m.LineEnding, len(lines))

	for i, line := range lines {
		terminated := i < len(lines)-1 || doc.TrailingNewline

		switch {
		case !terminated:
			endings[i] = doc.Ending
		case strings.HasSuffix(line, "\r"):
			lines[i] = strings.TrimSuffix(line, "\r")
			endings[i] = m.CRLF
		default:
			endings[i] = m.LF
		}
	}

	doc.Lines = lines
	doc.Endings = endings

	return doc
}

// WriteDocument writes doc to a temporary sibling and renames it over path,
// keeping the original permission bits.
func (a *LocalSourceFSAdapter) WriteDocument(ctx context.Context, path m.Path, doc m.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := string(path)

	mode := os.FileMode(defaultFileMode)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), tempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(doc.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	committed = true

	return nil
}
