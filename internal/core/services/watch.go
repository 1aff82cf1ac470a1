package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/splgraph-cli/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.DirectoryWatcher = (*WatchService)(nil)

// WatchService processes labels as they appear in a watched directory.
// Editors and file copies emit bursts of create/write events for the same
// path; a per-path rate limiter debounces them so each drop is parsed
// once.
type WatchService struct {
	parser driving.LabelParser
	writer driven.OutputWriter
	store  driven.LabelStore // optional

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewWatchService creates a watch service. store may be nil; catalog
// writes are then skipped.
func NewWatchService(
	parser driving.LabelParser,
	writer driven.OutputWriter,
	store driven.LabelStore,
) *WatchService {
	return &WatchService{
		parser:   parser,
		writer:   writer,
		store:    store,
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(2 * time.Second), // one parse per path per burst
	}
}

// Watch blocks processing events under dir until ctx is cancelled.
func (s *WatchService) Watch(ctx context.Context, dir string, opts driving.BatchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return domain.ErrWatcherClosed
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}
			if !s.allow(event.Name) {
				logger.Debug("Watch: debounced %s", event.Name)
				continue
			}
			s.process(ctx, event.Name, opts)

		case err, ok := <-watcher.Errors:
			if !ok {
				return domain.ErrWatcherClosed
			}
			logger.Warn("Watch: %v", err)
		}
	}
}

// process parses one dropped file. Failures are logged and skipped: the
// watcher must outlive any single bad document.
func (s *WatchService) process(ctx context.Context, path string, opts driving.BatchOptions) {
	result, err := s.parser.Parse(ctx, path)
	if err != nil {
		logger.Warn("Watch: %s failed: %v", path, err)
		return
	}

	stem := outputStem(path)
	if err := s.writer.WriteJSON(
		filepath.Join(opts.OutputDir, stem+".json"), result.Document, opts.Pretty); err != nil {
		logger.Warn("Watch: write %s: %v", path, err)
		return
	}
	if opts.Graph {
		if err := s.writer.WriteJSON(
			filepath.Join(opts.OutputDir, stem+".graph.json"), result.Graph, opts.Pretty); err != nil {
			logger.Warn("Watch: write graph %s: %v", path, err)
		}
	}

	if opts.Catalog && s.store != nil {
		if err := s.store.SaveLabel(ctx, &result.Document, &result.Graph); err != nil {
			logger.Warn("Watch: catalog %s: %v", path, err)
		}
	}
}

// allow reports whether the path's limiter has a token available.
func (s *WatchService) allow(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[path]
	if !ok {
		limiter = rate.NewLimiter(s.limit, 1)
		s.limiters[path] = limiter
	}
	return limiter.Allow()
}
