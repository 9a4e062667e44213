package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	nodes, err := deps.Site.SearchOutline(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(nodes) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching paths.")
		return nil
	}

	for _, node := range nodes {
		fmt.Fprintln(deps.Stdout, node.Path)
	}
	return nil
}
