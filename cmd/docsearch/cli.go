package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Site      docsearch.SiteService
	Converter docsearch.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string        `name:"base-url" short:"u" required:"" env:"DOCSEARCH_BASE_URL" help:"Base URL or directory holding the outline and description JSON"`
	Root    string        `short:"r" default:"option" env:"DOCSEARCH_ROOT" help:"Root name of the outline"`
	Timeout time.Duration `short:"t" default:"10s" env:"DOCSEARCH_TIMEOUT" help:"Fetch timeout per document"`
	RPS     float64       `name:"rps" default:"0" env:"DOCSEARCH_RPS" help:"Maximum fetches per second (0 for no limit)"`
	Verbose bool          `short:"v" help:"Log fetches and searches to stderr"`

	Outline OutlineCmd `cmd:"" help:"Print the outline tree"`
	Find    FindCmd    `cmd:"" help:"Find outline paths containing a string"`
	Search  SearchCmd  `cmd:"" help:"Search description text across all pages"`
	Desc    DescCmd    `cmd:"" help:"Print descriptions of a path or page"`
	Serve   ServeCmd   `cmd:"" help:"Serve the outline and search API over HTTP"`
}

// OutlineCmd is the "outline" subcommand.
type OutlineCmd struct {
	Path  string `arg:"" optional:"" help:"Outline path to start from (default: root)"`
	Depth int    `short:"d" default:"0" help:"Maximum depth to print (0 for no limit)"`
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	Query string `arg:"" help:"Substring to look for in outline paths"`
	Limit int    `short:"n" default:"20" help:"Maximum number of paths (0 for no limit)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search terms, separated by spaces, '+' or ','"`
	Sort  bool   `short:"s" help:"Print results sorted by path once every page is searched"`
}

// DescCmd is the "desc" subcommand.
type DescCmd struct {
	Path     string `arg:"" optional:"" help:"Outline path (default: root page)"`
	All      bool   `short:"a" help:"Print every description of the page"`
	Markdown bool   `short:"m" help:"Render descriptions as Markdown instead of plain text"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"DOCSEARCH_ADDR" help:"Listen address"`
}
