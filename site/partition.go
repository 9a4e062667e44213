package site

import (
	"context"

	"github.com/fwojciec/docsearch"
)

// partition is one cache entry. It is pending until done is closed; after
// that exactly one of index or err is set and the entry never changes.
type partition struct {
	key    string
	prefix string
	done   chan struct{}

	descs docsearch.Descriptions
	index *docsearch.Index
	err   error
}

func (p *partition) state() docsearch.PartitionState {
	select {
	case <-p.done:
		if p.err != nil {
			return docsearch.PartitionFailed
		}
		return docsearch.PartitionReady
	default:
		return docsearch.PartitionPending
	}
}

func (p *partition) status() docsearch.PartitionStatus {
	st := docsearch.PartitionStatus{Key: p.key, State: p.state()}
	switch st.State {
	case docsearch.PartitionReady:
		st.Records = p.index.Len()
	case docsearch.PartitionFailed:
		st.Error = p.err.Error()
	}
	return st
}

func (p *partition) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return p.err
	}
}

// partitionKey returns the cache key for targetPath and the prefix used to
// qualify the local paths of that partition.
// Top-level settings like color live in the root partition; everything
// under a registered page lives in that page's partition.
func (s *Site) partitionKey(outline *docsearch.Outline, targetPath string) (key, prefix string) {
	if targetPath == "" || outline == nil {
		return s.rootName, ""
	}
	page := docsearch.PagePath(targetPath)
	if outline.Page(page) == nil {
		return s.rootName, ""
	}
	return s.rootName + "." + page, page
}

// ensure returns the cache entry governing targetPath, creating it and
// starting its fetch on first access. Only the root partition is available
// before the outline has loaded.
func (s *Site) ensure(ctx context.Context, targetPath string) (*partition, error) {
	var outline *docsearch.Outline
	if targetPath != "" {
		o, err := s.loaded()
		if err != nil {
			return nil, err
		}
		outline = o
	}
	return s.ensureIn(ctx, outline, targetPath), nil
}

// ensureIn is ensure with targetPath resolved against outline.
func (s *Site) ensureIn(ctx context.Context, outline *docsearch.Outline, targetPath string) *partition {
	key, prefix := s.partitionKey(outline, targetPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.partitions[key]; ok {
		return p
	}

	p := &partition{key: key, prefix: prefix, done: make(chan struct{})}
	s.partitions[key] = p
	s.keys = append(s.keys, key)
	go s.loadPartition(context.WithoutCancel(ctx), p)

	return p
}

func (s *Site) loadPartition(ctx context.Context, p *partition) {
	defer close(p.done)

	url := s.baseURL + "/" + p.key + ".json"
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		p.err = fetchError(url, err)
		return
	}

	descs, err := decodeDescriptions(data)
	if err != nil {
		p.err = fetchError(url, err)
		return
	}

	p.descs = descs
	p.index = docsearch.NewIndex(descs, p.prefix)
}
