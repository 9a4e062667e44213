package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
)

// Run executes the desc command.
func (c *DescCmd) Run(deps *Dependencies) error {
	descs, err := deps.Site.PageDescriptions(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	page, err := deps.Site.PageOutline(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	// Description keys are relative to the page root.
	local := strings.TrimPrefix(strings.TrimPrefix(c.Path, page.Path), ".")

	if c.All || local == "" {
		for i, d := range descs {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "## %s\n\n", qualify(page.Path, d.Path))
			if err := c.print(deps, d.HTML); err != nil {
				return err
			}
		}
		return nil
	}

	html, ok := descs.Get(local)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: no description for %q\n", c.Path)
		return docsearch.Errorf(docsearch.ENOTFOUND, "no description for %q", c.Path)
	}
	return c.print(deps, html)
}

func (c *DescCmd) print(deps *Dependencies, html string) error {
	if !c.Markdown {
		fmt.Fprintln(deps.Stdout, strings.TrimSpace(docsearch.StripHTML(html)))
		return nil
	}
	md, err := deps.Converter.Convert(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

func qualify(prefix, path string) string {
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}
