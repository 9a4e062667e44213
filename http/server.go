package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultOutlineCacheSize is the number of outline search results kept.
const DefaultOutlineCacheSize = 256

// Server exposes a docsearch.SiteService as a JSON API.
type Server struct {
	router chi.Router
	site   docsearch.SiteService
	log    *slog.Logger

	// Outline searches are cached; the outline never changes once loaded.
	outlineHits *lru.Cache[outlineQuery, []*docsearch.OutlineNode]
}

type outlineQuery struct {
	query string
	limit int
}

// NewServer creates and configures the HTTP server.
func NewServer(site docsearch.SiteService, log *slog.Logger) *Server {
	cache, _ := lru.New[outlineQuery, []*docsearch.OutlineNode](DefaultOutlineCacheSize)
	s := &Server{
		site:        site,
		log:         log,
		outlineHits: cache,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/outline", s.handleOutline)
		r.Get("/outline/page", s.handlePageOutline)
		r.Get("/outline/node", s.handleOutlineNode)
		r.Get("/outline/search", s.handleOutlineSearch)
		r.Get("/pages/default", s.handleDefaultPage)
		r.Get("/descriptions", s.handleDescriptions)
		r.Get("/search", s.handleSearch)
		r.Get("/partitions", s.handlePartitions)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	outline, err := s.site.Outline(r.Context())
	if err != nil {
		s.appError(w, err)
		return
	}
	writeJSON(w, outline.Root())
}

func (s *Server) handlePageOutline(w http.ResponseWriter, r *http.Request) {
	node, err := s.site.PageOutline(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		s.appError(w, err)
		return
	}
	writeJSON(w, node)
}

func (s *Server) handleOutlineNode(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	node := s.site.OutlineNode(path)
	if node == nil {
		s.appError(w, docsearch.Errorf(docsearch.ENOTFOUND, "outline node %q not found", path))
		return
	}
	writeJSON(w, map[string]any{
		"node": node,
		"id":   docsearch.ConvertPathToID(node.Path),
	})
}

func (s *Server) handleOutlineSearch(w http.ResponseWriter, r *http.Request) {
	q := outlineQuery{query: r.URL.Query().Get("q")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			s.appError(w, docsearch.Errorf(docsearch.EINVALID, "invalid limit %q", v))
			return
		}
		q.limit = limit
	}

	nodes, ok := s.outlineHits.Get(q)
	if !ok {
		var err error
		nodes, err = s.site.SearchOutline(r.Context(), q.query, q.limit)
		if err != nil {
			s.appError(w, err)
			return
		}
		s.outlineHits.Add(q, nodes)
	}

	paths := make([]string, 0, len(nodes))
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	writeJSON(w, map[string]any{"paths": paths})
}

func (s *Server) handleDefaultPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.site.DefaultPage(r.URL.Query().Get("path"))
	if err != nil {
		s.appError(w, err)
		return
	}
	writeJSON(w, map[string]string{"page": page})
}

func (s *Server) handleDescriptions(w http.ResponseWriter, r *http.Request) {
	descs, err := s.site.PageDescriptions(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		s.appError(w, err)
		return
	}

	body, err := json.Marshal(descs)
	if err != nil {
		s.appError(w, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// etagMatch reports whether an If-None-Match header value matches etag,
// using the weak comparison required for GET.
func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// searchEvent is one line of the streamed full-text search response.
type searchEvent struct {
	Partition string                   `json:"partition,omitempty"`
	Records   []*docsearch.IndexRecord `json:"records,omitempty"`
	Done      bool                     `json:"done,omitempty"`
}

// handleSearch streams full-text matches as newline-delimited JSON, one line
// per partition as it resolves, followed by a final done line.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
	}

	err := s.site.SearchAll(r.Context(), query, func(partition string, records []*docsearch.IndexRecord) {
		start()
		if err := enc.Encode(searchEvent{Partition: partition, Records: records}); err != nil {
			s.log.Warn("search stream write failed", "partition", partition, "err", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		if !started {
			s.appError(w, err)
			return
		}
		s.log.Warn("search ended early", "query", query, "err", err)
		return
	}

	start()
	_ = enc.Encode(searchEvent{Done: true})
}

func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"partitions": s.site.Partitions()})
}

// appError writes err as a JSON error with a status matching its code.
func (s *Server) appError(w http.ResponseWriter, err error) {
	code := docsearch.ErrorCode(err)
	if code == docsearch.EINTERNAL {
		s.log.Error("internal error", "err", err)
	}
	jsonError(w, docsearch.ErrorMessage(err), errorStatus(code))
}

func errorStatus(code string) int {
	switch code {
	case docsearch.EINVALID:
		return http.StatusBadRequest
	case docsearch.ENOTFOUND:
		return http.StatusNotFound
	case docsearch.ENOTLOADED:
		return http.StatusServiceUnavailable
	case docsearch.EFETCH:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
