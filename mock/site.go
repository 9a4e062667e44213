package mock

import (
	"context"

	"github.com/fwojciec/docsearch"
)

var _ docsearch.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of docsearch.SiteService.
type SiteService struct {
	PreloadFn          func(ctx context.Context) (*docsearch.Outline, error)
	OutlineFn          func(ctx context.Context) (*docsearch.Outline, error)
	PageOutlineFn      func(ctx context.Context, path string) (*docsearch.OutlineNode, error)
	RootDescriptionsFn func(ctx context.Context) (docsearch.Descriptions, error)
	PageDescriptionsFn func(ctx context.Context, path string) (docsearch.Descriptions, error)
	SearchAllFn        func(ctx context.Context, query string, onMatch docsearch.MatchFunc) error
	SearchOutlineFn    func(ctx context.Context, query string, limit int) ([]*docsearch.OutlineNode, error)
	OutlineNodeFn      func(path string) *docsearch.OutlineNode
	DefaultPageFn      func(wrongPath string) (string, error)
	PartitionsFn       func() []docsearch.PartitionStatus
}

func (s *SiteService) Preload(ctx context.Context) (*docsearch.Outline, error) {
	return s.PreloadFn(ctx)
}

func (s *SiteService) Outline(ctx context.Context) (*docsearch.Outline, error) {
	return s.OutlineFn(ctx)
}

func (s *SiteService) PageOutline(ctx context.Context, path string) (*docsearch.OutlineNode, error) {
	return s.PageOutlineFn(ctx, path)
}

func (s *SiteService) RootDescriptions(ctx context.Context) (docsearch.Descriptions, error) {
	return s.RootDescriptionsFn(ctx)
}

func (s *SiteService) PageDescriptions(ctx context.Context, path string) (docsearch.Descriptions, error) {
	return s.PageDescriptionsFn(ctx, path)
}

func (s *SiteService) SearchAll(ctx context.Context, query string, onMatch docsearch.MatchFunc) error {
	return s.SearchAllFn(ctx, query, onMatch)
}

func (s *SiteService) SearchOutline(ctx context.Context, query string, limit int) ([]*docsearch.OutlineNode, error) {
	return s.SearchOutlineFn(ctx, query, limit)
}

func (s *SiteService) OutlineNode(path string) *docsearch.OutlineNode {
	return s.OutlineNodeFn(path)
}

func (s *SiteService) DefaultPage(wrongPath string) (string, error) {
	return s.DefaultPageFn(wrongPath)
}

func (s *SiteService) Partitions() []docsearch.PartitionStatus {
	return s.PartitionsFn()
}
