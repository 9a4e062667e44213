package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Run executes the outline command.
func (c *OutlineCmd) Run(deps *Dependencies) error {
	outline, err := deps.Site.Outline(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	node := outline.Root()
	if c.Path != "" {
		node = outline.Node(c.Path)
		if node == nil {
			fmt.Fprintf(deps.Stderr, "error: path %q not found. Use 'docsearch find' to look it up.\n", c.Path)
			return docsearch.Errorf(docsearch.ENOTFOUND, "path %q not found", c.Path)
		}
	}

	printNode(deps.Stdout, node, 0, c.Depth)
	return nil
}

func printNode(w io.Writer, node *docsearch.OutlineNode, level, maxDepth int) {
	if !node.IsRoot {
		fmt.Fprintf(w, "%s%s (%s)\n", strings.Repeat("  ", level), nodeLabel(node), strings.Join(node.Type, "|"))
		level++
	}
	if maxDepth > 0 && level >= maxDepth {
		return
	}
	for _, child := range node.Children {
		printNode(w, child, level, maxDepth)
	}
}

func nodeLabel(node *docsearch.OutlineNode) string {
	if node.ArrayItemType != "" {
		return "[" + node.ArrayItemType + "]"
	}
	return node.Prop
}
