package docsearch

import (
	"regexp"
	"strings"
	"unicode"
)

// IndexRecord is one searchable description. It is immutable once built.
type IndexRecord struct {
	// Path is the fully qualified outline path.
	Path string `json:"path"`

	// Content is the raw description HTML.
	Content string `json:"content"`

	// Text is Content with markup stripped.
	Text string `json:"text"`
}

// Index searches the descriptions of one partition.
type Index struct {
	records []*IndexRecord
}

// NewIndex builds an index with one record per description. A non-empty
// prefix qualifies each local path as prefix + "." + path.
func NewIndex(descs Descriptions, prefix string) *Index {
	records := make([]*IndexRecord, 0, len(descs))
	for _, desc := range descs {
		path := desc.Path
		if prefix != "" {
			path = prefix + "." + path
		}
		records = append(records, &IndexRecord{
			Path:    path,
			Content: desc.HTML,
			Text:    StripHTML(desc.HTML),
		})
	}
	return &Index{records: records}
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Records returns copies of the indexed records in insertion order.
func (idx *Index) Records() []*IndexRecord {
	out := make([]*IndexRecord, 0, len(idx.records))
	for _, rec := range idx.records {
		out = append(out, rec.clone())
	}
	return out
}

func (r *IndexRecord) clone() *IndexRecord {
	c := *r
	return &c
}

// Search returns the records matching every token of query, in insertion
// order. A token matches a record if it matches the record's text or path.
// A query without tokens matches nothing. The returned records are copies;
// changing them does not affect the index.
func (idx *Index) Search(query string) []*IndexRecord {
	results := []*IndexRecord{}

	patterns := compileQuery(query)
	if len(patterns) == 0 {
		return results
	}

	for _, rec := range idx.records {
		if matchAll(patterns, rec) {
			results = append(results, rec.clone())
		}
	}
	return results
}

func matchAll(patterns []*regexp.Regexp, rec *IndexRecord) bool {
	for _, re := range patterns {
		if !re.MatchString(rec.Text) && !re.MatchString(rec.Path) {
			return false
		}
	}
	return true
}

// Tokenize splits a query on whitespace, "+" and "," and drops empty tokens.
func Tokenize(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		return r == '+' || r == ',' || unicode.IsSpace(r)
	})
}

// compileQuery compiles each token as a case-insensitive pattern. Tokens
// that are not valid expressions are matched literally.
func compileQuery(query string) []*regexp.Regexp {
	tokens := Tokenize(query)
	patterns := make([]*regexp.Regexp, 0, len(tokens))
	for _, token := range tokens {
		re, err := regexp.Compile("(?i)" + token)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(token))
		}
		patterns = append(patterns, re)
	}
	return patterns
}
