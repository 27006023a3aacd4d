package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yaklabco/pytidy/pkg/langdetect"
)

// File is one discovered source file.
type File struct {
	// Path is the path shown to the user: the argument as given, or the
	// walked path joined onto the directory argument.
	Path string

	// Abs is the absolute path used for I/O.
	Abs string
}

// vcsDirs are never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsDirs = []string{".git", ".hg", ".svn"}

// matcher decides which walked paths are kept.
type matcher struct {
	extensions []string
	excludes   []glob.Glob
	gitignore  *ignore.GitIgnore
	shebang    bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	m := &matcher{shebang: opts.DetectShebang}

	for _, ext := range opts.Extensions {
		m.extensions = append(m.extensions, strings.ToLower(ext))
	}

	for _, pattern := range opts.ExcludeGlobs {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		m.excludes = append(m.excludes, g)
	}

	if opts.RespectGitignore {
		path := filepath.Join(workDir, ".gitignore")
		gi, err := ignore.CompileIgnoreFile(path)
		switch {
		case err == nil:
			m.gitignore = gi
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return m, nil
}

// excluded reports whether rel (slash-separated, relative to the working
// directory) is excluded. Directories are also tested with a trailing slash
// so "build/**" and "build/" prune the whole tree.
func (m *matcher) excluded(rel string, isDir bool) bool {
	candidates := []string{rel}
	if isDir {
		candidates = append(candidates, rel+"/")
	}
	for _, c := range candidates {
		for _, g := range m.excludes {
			if g.Match(c) || g.Match(pathBase(c)) {
				return true
			}
		}
		if m.gitignore != nil && m.gitignore.MatchesPath(c) {
			return true
		}
	}
	return false
}

func pathBase(p string) string {
	return filepath.Base(strings.TrimSuffix(p, "/"))
}

// selected reports whether a walked file is Python source.
func (m *matcher) selected(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		return slices.Contains(m.extensions, ext)
	}
	if !m.shebang {
		return false
	}
	head, err := langdetect.ReadHead(path)
	return err == nil && langdetect.IsPythonScript(head)
}

// Discover returns the files to process in discovery order: arguments in
// the order given, directory contents in lexical walk order. Explicit file
// arguments are always included; only walked files are filtered.
func Discover(ctx context.Context, opts Options) ([]File, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []File
	add := func(f File) {
		if _, ok := seen[f.Abs]; ok {
			return
		}
		seen[f.Abs] = struct{}{}
		files = append(files, f)
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := arg
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, arg)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			add(File{Path: arg, Abs: abs})
			continue
		}

		if err := walkDirectory(ctx, arg, abs, workDir, m, opts.FollowSymlinks, add); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory walks root (shown to the user as display) and passes every
// selected file to add.
func walkDirectory(
	ctx context.Context,
	display, root, workDir string,
	m *matcher,
	followSymlinks bool,
	add func(File),
) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		rel, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if slices.Contains(vcsDirs, entry.Name()) || m.excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if info.IsDir() {
				if !followSymlinks || m.excluded(rel, true) {
					return nil
				}
				target, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped.
				}
				return walkDirectory(ctx, displayPath(display, root, path), target, workDir, m, followSymlinks, add)
			}
		}

		if m.excluded(rel, false) || !m.selected(path) {
			return nil
		}

		add(File{Path: displayPath(display, root, path), Abs: path})
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", display, err)
	}
	return nil
}

// displayPath joins the part of path below root onto the user's argument.
func displayPath(display, root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.Join(display, rel)
}
