// Package cache tells page renderers which public paths went stale after a
// job changed status.
package cache

import (
	"context"
	"log/slog"
)

type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// JobPaths lists the pages that show a job with the given slug.
func JobPaths(slugs ...string) []string {
	paths := []string{"/admin", "/jobs", "/"}
	for _, s := range slugs {
		if s != "" {
			paths = append(paths, "/jobs/"+s)
		}
	}
	return paths
}

// LogInvalidator only records invalidations. It is used when no broker is
// configured.
type LogInvalidator struct {
	log *slog.Logger
}

func NewLogInvalidator(log *slog.Logger) *LogInvalidator {
	return &LogInvalidator{log: log}
}

func (l *LogInvalidator) Invalidate(ctx context.Context, paths ...string) error {
	l.log.InfoContext(ctx, "pages invalidated", slog.Any("paths", paths))
	return nil
}
