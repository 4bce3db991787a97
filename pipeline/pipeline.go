// Package pipeline runs the feed build: load, validate, map, sort, render,
// verify and write.
package pipeline

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kellnr/site-feed/atom"
	"github.com/kellnr/site-feed/changelog"
	"github.com/kellnr/site-feed/feed"
	"github.com/kellnr/site-feed/source"
)

// Options configures a run.
type Options struct {
	// Root is the project directory holding src/data and public.
	Root   string
	Config feed.Config
	// DryRun skips writing the output file.
	DryRun bool
	// Now is used to date an empty feed. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Result summarizes a run.
type Result struct {
	OutputPath string
	Releases   int
	Posts      int
	Warnings   []string
	Document   []byte
}

// Run builds the feed. Any error aborts the run before the output file is
// touched, except a failing write itself.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	changelogDoc, err := source.LoadChangelog(opts.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded changelog", "releases", len(changelogDoc.Releases))

	blogDoc, err := source.LoadBlogPosts(opts.Root)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded blog posts", "posts", len(blogDoc.Posts))

	warnings := changelog.Lint(changelogDoc.Releases)
	for _, w := range warnings {
		logger.Warn(w)
	}

	builder := feed.NewBuilder(opts.Config)
	entries := feed.Merge(
		builder.Releases(changelogDoc.Releases),
		builder.Posts(blogDoc.Posts),
	)

	doc, err := atom.Marshal(opts.Config, entries, now().UTC())
	if err != nil {
		return nil, err
	}

	if err := feed.NewVerifier().Verify(doc, entries); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: filepath.Join(opts.Root, atom.OutputPath),
		Releases:   len(changelogDoc.Releases),
		Posts:      len(blogDoc.Posts),
		Warnings:   warnings,
		Document:   doc,
	}

	if opts.DryRun {
		logger.Debug("dry run, not writing feed", "path", result.OutputPath)
		return result, nil
	}

	if err := atom.WriteFile(result.OutputPath, doc); err != nil {
		return nil, err
	}

	return result, nil
}
