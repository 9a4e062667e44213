package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
)

const snippetLen = 80

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var (
		collected  []*docsearch.IndexRecord
		matches    int
		partitions int
	)

	err := deps.Site.SearchAll(deps.Ctx, c.Query, func(partition string, records []*docsearch.IndexRecord) {
		partitions++
		matches += len(records)
		if c.Sort {
			collected = append(collected, records...)
			return
		}
		for _, rec := range records {
			printRecord(deps.Stdout, rec)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if c.Sort {
		sort.SliceStable(collected, func(i, j int) bool {
			return collected[i].Path < collected[j].Path
		})
		for _, rec := range collected {
			printRecord(deps.Stdout, rec)
		}
	}

	fmt.Fprintf(deps.Stdout, "\n%d matches in %d partitions\n", matches, partitions)
	return nil
}

func printRecord(w io.Writer, rec *docsearch.IndexRecord) {
	fmt.Fprintf(w, "%s\n    %s\n", rec.Path, snippet(rec.Text))
}

// snippet collapses whitespace in text and truncates it to snippetLen runes.
func snippet(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(s) <= snippetLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLen]) + "..."
}
