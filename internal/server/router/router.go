// Package router maps a request's method and path to the action a worker
// should run. It holds no state.
package router

import (
	"net/http"
	"strings"
)

// Kind enumerates the actions a request can resolve to.
type Kind int

const (
	NotFound Kind = iota
	ServeStaticFile
	ListEntriesFragment
	SubmitEntry
	GetVisitorCount
	IncrementVisitorCount
	PreflightCheck
	MethodNotAllowed
)

var kindNames = [...]string{
	NotFound:              "not_found",
	ServeStaticFile:       "serve_static_file",
	ListEntriesFragment:   "list_entries_fragment",
	SubmitEntry:           "submit_entry",
	GetVisitorCount:       "get_visitor_count",
	IncrementVisitorCount: "increment_visitor_count",
	PreflightCheck:        "preflight_check",
	MethodNotAllowed:      "method_not_allowed",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

const (
	EntriesPath      = "/entries"
	VisitorCountPath = "/visitor_count"
	DefaultDocument  = "index.html"
)

// Action is the result of Resolve. Path is set for ServeStaticFile (the
// file path relative to the static root) and PreflightCheck.
type Action struct {
	Kind Kind
	Path string
}

// Resolve decides what to do with a request. path is the URL path without
// the query string.
func Resolve(method, path string) Action {
	switch method {
	case http.MethodGet:
		switch path {
		case EntriesPath:
			return Action{Kind: ListEntriesFragment}
		case VisitorCountPath:
			return Action{Kind: GetVisitorCount}
		case "/", "":
			return Action{Kind: ServeStaticFile, Path: DefaultDocument}
		default:
			return Action{Kind: ServeStaticFile, Path: strings.TrimPrefix(path, "/")}
		}
	case http.MethodPost:
		if path == VisitorCountPath {
			return Action{Kind: IncrementVisitorCount}
		}
		return Action{Kind: SubmitEntry}
	case http.MethodOptions:
		if path == VisitorCountPath {
			return Action{Kind: PreflightCheck, Path: path}
		}
		return Action{Kind: NotFound}
	default:
		return Action{Kind: MethodNotAllowed}
	}
}
