package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingSiteService implements docsearch.SiteService.
var _ docsearch.SiteService = (*LoggingSiteService)(nil)

// LoggingSiteService wraps a SiteService with logging of its blocking
// operations. Synchronous lookups are delegated without logging.
type LoggingSiteService struct {
	next   docsearch.SiteService
	logger *slog.Logger
}

// NewLoggingSiteService creates a new LoggingSiteService.
func NewLoggingSiteService(next docsearch.SiteService, logger *slog.Logger) *LoggingSiteService {
	return &LoggingSiteService{next: next, logger: logger}
}

// Preload delegates to the wrapped service and logs the outline size.
func (s *LoggingSiteService) Preload(ctx context.Context) (outline *docsearch.Outline, err error) {
	defer func(begin time.Time) {
		var nodes, pages int
		if outline != nil {
			nodes, pages = outline.Len(), len(outline.Pages())
		}
		s.logger.Info("preload",
			"nodes", nodes,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Preload(ctx)
}

func (s *LoggingSiteService) Outline(ctx context.Context) (*docsearch.Outline, error) {
	return s.next.Outline(ctx)
}

func (s *LoggingSiteService) PageOutline(ctx context.Context, path string) (*docsearch.OutlineNode, error) {
	return s.next.PageOutline(ctx, path)
}

func (s *LoggingSiteService) RootDescriptions(ctx context.Context) (docsearch.Descriptions, error) {
	return s.next.RootDescriptions(ctx)
}

// PageDescriptions delegates to the wrapped service and logs the operation.
func (s *LoggingSiteService) PageDescriptions(ctx context.Context, path string) (descs docsearch.Descriptions, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page descriptions",
			"path", path,
			"count", len(descs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PageDescriptions(ctx, path)
}

// SearchAll delegates to the wrapped service and logs how many partitions
// reported and how many records matched.
func (s *LoggingSiteService) SearchAll(ctx context.Context, query string, onMatch docsearch.MatchFunc) (err error) {
	var partitions, matches int
	defer func(begin time.Time) {
		s.logger.Info("search all",
			"query", query,
			"partitions", partitions,
			"matches", matches,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchAll(ctx, query, func(partition string, records []*docsearch.IndexRecord) {
		partitions++
		matches += len(records)
		onMatch(partition, records)
	})
}

// SearchOutline delegates to the wrapped service and logs the operation.
func (s *LoggingSiteService) SearchOutline(ctx context.Context, query string, limit int) (nodes []*docsearch.OutlineNode, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search outline",
			"query", query,
			"limit", limit,
			"count", len(nodes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchOutline(ctx, query, limit)
}

func (s *LoggingSiteService) OutlineNode(path string) *docsearch.OutlineNode {
	return s.next.OutlineNode(path)
}

func (s *LoggingSiteService) DefaultPage(wrongPath string) (string, error) {
	return s.next.DefaultPage(wrongPath)
}

func (s *LoggingSiteService) Partitions() []docsearch.PartitionStatus {
	return s.next.Partitions()
}
