package docsearch

import "context"

// MatchFunc receives the matches of one partition during a full-text search.
// It is called once per partition that resolves, in arrival order.
type MatchFunc func(partition string, records []*IndexRecord)

// PartitionState is the lifecycle state of a description partition.
type PartitionState string

// PartitionState constants.
const (
	PartitionPending PartitionState = "pending"
	PartitionReady   PartitionState = "ready"
	PartitionFailed  PartitionState = "failed"
)

// PartitionStatus describes one cached description partition.
type PartitionStatus struct {
	Key     string         `json:"key"`
	State   PartitionState `json:"state"`
	Records int            `json:"records"`
	Error   string         `json:"error,omitempty"`
}

// SiteService represents the outline and description data of one
// documentation site.
type SiteService interface {
	// Preload fetches and normalizes the outline. The fetch happens once;
	// later calls return the same result.
	Preload(ctx context.Context) (*Outline, error)

	// Outline waits for the preloaded outline.
	// Returns ENOTLOADED if Preload was never called.
	Outline(ctx context.Context) (*Outline, error)

	// PageOutline returns the page root governing path, or the outline root.
	PageOutline(ctx context.Context, path string) (*OutlineNode, error)

	// RootDescriptions returns the descriptions of the root partition.
	RootDescriptions(ctx context.Context) (Descriptions, error)

	// PageDescriptions returns the descriptions of the partition governing path.
	// Returns ENOTLOADED if the outline is not loaded yet.
	PageDescriptions(ctx context.Context, path string) (Descriptions, error)

	// SearchAll searches every partition, reporting matches through onMatch
	// as partitions resolve. It returns once every partition has settled.
	SearchAll(ctx context.Context, query string, onMatch MatchFunc) error

	// SearchOutline returns outline nodes whose path contains query.
	// A limit <= 0 is unbounded.
	SearchOutline(ctx context.Context, query string, limit int) ([]*OutlineNode, error)

	// OutlineNode returns the node with the given path, or nil if the path is
	// unknown or the outline is not loaded.
	OutlineNode(path string) *OutlineNode

	// DefaultPage returns the page to fall back to for wrongPath.
	// Returns ENOTLOADED if the outline is not loaded yet.
	DefaultPage(wrongPath string) (string, error)

	// Partitions returns a snapshot of the cached description partitions.
	Partitions() []PartitionStatus
}
