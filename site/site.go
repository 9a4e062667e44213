// Package site coordinates outline loading, the description partition
// cache and search for one documentation site.
package site

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/docsearch"
	"golang.org/x/sync/errgroup"
)

// Ensure Site implements docsearch.SiteService at compile time.
var _ docsearch.SiteService = (*Site)(nil)

// Site holds the outline and the description partitions of one
// documentation site. Several sites can coexist in one process.
type Site struct {
	fetcher  docsearch.Fetcher
	baseURL  string
	rootName string
	logger   *slog.Logger

	mu         sync.Mutex
	outline    *outlineLoad
	partitions map[string]*partition
	keys       []string
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger used for partitions skipped during search.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// New creates a Site reading {baseURL}/{rootName}-outline.json and
// {baseURL}/{key}.json through fetcher.
func New(fetcher docsearch.Fetcher, baseURL, rootName string, opts ...Option) *Site {
	s := &Site{
		fetcher:    fetcher,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		rootName:   rootName,
		logger:     slog.New(slog.DiscardHandler),
		partitions: make(map[string]*partition),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RootName returns the name of the root partition.
func (s *Site) RootName() string {
	return s.rootName
}

type outlineLoad struct {
	done    chan struct{}
	outline *docsearch.Outline
	err     error
}

func (l *outlineLoad) wait(ctx context.Context) (*docsearch.Outline, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return l.outline, l.err
	}
}

// Preload fetches and normalizes the outline. Only the first call fetches;
// every call returns the result of that fetch, including its failure.
// The fetch is not cancelled when ctx is.
func (s *Site) Preload(ctx context.Context) (*docsearch.Outline, error) {
	s.mu.Lock()
	if s.outline == nil {
		load := &outlineLoad{done: make(chan struct{})}
		s.outline = load
		go s.loadOutline(context.WithoutCancel(ctx), load)
	}
	load := s.outline
	s.mu.Unlock()

	return load.wait(ctx)
}

func (s *Site) loadOutline(ctx context.Context, load *outlineLoad) {
	defer close(load.done)

	url := s.baseURL + "/" + s.rootName + "-outline.json"
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		load.err = fetchError(url, err)
		return
	}

	outline, err := docsearch.ParseOutline(data)
	if err != nil {
		load.err = fetchError(url, err)
		return
	}
	load.outline = outline
}

// ForgetOutline drops a settled outline so the next Preload fetches again.
// It reports false if no outline was loaded or its fetch is still pending.
// Cached partitions are kept: their keys name pages, and a reloaded outline
// maps the same page paths to the same documents. Use Forget to drop them.
func (s *Site) ForgetOutline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outline == nil {
		return false
	}
	select {
	case <-s.outline.done:
		s.outline = nil
		return true
	default:
		return false
	}
}

// Outline waits for the outline requested by Preload.
func (s *Site) Outline(ctx context.Context) (*docsearch.Outline, error) {
	s.mu.Lock()
	load := s.outline
	s.mu.Unlock()

	if load == nil {
		return nil, docsearch.Errorf(docsearch.ENOTLOADED, "outline not loaded")
	}
	return load.wait(ctx)
}

// loaded returns the outline without waiting.
func (s *Site) loaded() (*docsearch.Outline, error) {
	s.mu.Lock()
	load := s.outline
	s.mu.Unlock()

	if load == nil {
		return nil, docsearch.Errorf(docsearch.ENOTLOADED, "outline not loaded")
	}
	select {
	case <-load.done:
		return load.outline, load.err
	default:
		return nil, docsearch.Errorf(docsearch.ENOTLOADED, "outline not loaded")
	}
}

// PageOutline returns the page root governing path, or the outline root.
func (s *Site) PageOutline(ctx context.Context, path string) (*docsearch.OutlineNode, error) {
	outline, err := s.Outline(ctx)
	if err != nil {
		return nil, err
	}
	return outline.PageOutline(path), nil
}

// OutlineNode returns the node with the given path. It returns nil if the
// path is unknown or the outline is not loaded.
func (s *Site) OutlineNode(path string) *docsearch.OutlineNode {
	outline, err := s.loaded()
	if err != nil {
		return nil
	}
	return outline.Node(path)
}

// DefaultPage returns the page to fall back to for wrongPath.
func (s *Site) DefaultPage(wrongPath string) (string, error) {
	outline, err := s.loaded()
	if err != nil {
		return "", err
	}
	return outline.DefaultPage(wrongPath), nil
}

// SearchOutline returns outline nodes whose path contains query.
func (s *Site) SearchOutline(ctx context.Context, query string, limit int) ([]*docsearch.OutlineNode, error) {
	outline, err := s.Outline(ctx)
	if err != nil {
		return nil, err
	}
	return outline.Search(query, limit), nil
}

// RootDescriptions returns the descriptions of the root partition.
func (s *Site) RootDescriptions(ctx context.Context) (docsearch.Descriptions, error) {
	return s.PageDescriptions(ctx, "")
}

// PageDescriptions returns the descriptions of the partition governing path,
// fetching it on first access.
func (s *Site) PageDescriptions(ctx context.Context, path string) (docsearch.Descriptions, error) {
	p, err := s.ensure(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.descs, nil
}

// SearchAll searches the root partition and every page partition of the
// outline it waited for, even if that outline is forgotten meanwhile. Cached
// partitions are reported before SearchAll starts waiting; the others are
// reported as their fetches complete. Calls to onMatch never overlap.
// Partitions that fail to load are skipped. SearchAll returns once every
// partition has settled, or with ctx.Err() if ctx is done first.
func (s *Site) SearchAll(ctx context.Context, query string, onMatch docsearch.MatchFunc) error {
	outline, err := s.Outline(ctx)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	report := func(p *partition) {
		records := p.index.Search(query)
		mu.Lock()
		defer mu.Unlock()
		onMatch(p.key, records)
	}

	var g errgroup.Group
	for _, target := range append([]string{""}, outline.Pages()...) {
		p := s.ensureIn(ctx, outline, target)

		switch p.state() {
		case docsearch.PartitionReady:
			report(p)
		case docsearch.PartitionFailed:
			s.logger.Debug("partition skipped", "partition", p.key, "err", p.err)
		default:
			g.Go(func() error {
				if err := p.wait(ctx); err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					s.logger.Warn("partition skipped", "partition", p.key, "err", err)
					return nil
				}
				report(p)
				return nil
			})
		}
	}
	return g.Wait()
}

// Partitions returns the cached partitions in creation order.
func (s *Site) Partitions() []docsearch.PartitionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]docsearch.PartitionStatus, 0, len(s.keys))
	for _, key := range s.keys {
		statuses = append(statuses, s.partitions[key].status())
	}
	return statuses
}

// Forget evicts a settled partition so the next access fetches it again.
// It reports false if the partition is unknown or still pending.
func (s *Site) Forget(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partitions[key]
	if !ok || p.state() == docsearch.PartitionPending {
		return false
	}
	delete(s.partitions, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// fetchError reports a failed fetch or decode of url as EFETCH.
func fetchError(url string, err error) error {
	msg := err.Error()
	if docsearch.ErrorCode(err) != docsearch.EINTERNAL {
		msg = docsearch.ErrorMessage(err)
	}
	return docsearch.Errorf(docsearch.EFETCH, "%s: %s", url, msg)
}

func decodeDescriptions(data []byte) (docsearch.Descriptions, error) {
	var descs docsearch.Descriptions
	if err := json.Unmarshal(data, &descs); err != nil {
		return nil, err
	}
	return descs, nil
}
