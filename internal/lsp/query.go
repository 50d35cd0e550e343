package lsp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// This file is the query surface: thin, stateless compositions over a
// Client that convert a path + position into the open-then-request
// sequence the spec requires, and annotate otherwise-ambiguous empty
// results with the readiness state that only the Client can see.

// PathToURI converts a filesystem path to the file:// URI the server
// expects.
func PathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

// URIToPath converts a file:// URI back to a filesystem path.
func URIToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

func languageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c":
		return "c"
	case ".h":
		return "c"
	case ".hh", ".hpp", ".hxx":
		return "cpp"
	case ".cc", ".cpp", ".cxx":
		return "cpp"
	case ".m":
		return "objective-c"
	case ".mm":
		return "objective-cpp"
	default:
		return "cpp"
	}
}

// ensureOpen opens uri against client if it isn't already, reading the
// file from disk exactly once. Subsequent queries for the same URI skip
// straight through.
func ensureOpen(ctx context.Context, client *Client, uri string) error {
	if client.IsOpen(uri) {
		return nil
	}
	path := URIToPath(uri)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lsp: reading %s: %w", path, err)
	}
	err = client.Open(ctx, uri, string(data), languageForPath(path))
	if err != nil && !IsKind(err, KindAlreadyOpen) {
		return err
	}
	return nil
}

// readinessHint composes a hint string for an empty result, pointing the
// caller at WaitForFile and the current indexing status. This annotation
// lives here, not in the Client, because it composes readiness state with
// a specific result shape — a decision recorded as an explicit choice
// between the two, in the spec's own words.
func readinessHint(client *Client) string {
	return fmt.Sprintf(
		"no results found; indexing status is %q — call wait_for_file and retry once the file is ready",
		client.IndexingStatusString(),
	)
}

// Definition resolves textDocument/definition for the given file position,
// opening the file first if needed.
func Definition(ctx context.Context, client *Client, path string, line, col int) ([]Location, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	return client.Definition(ctx, uri, line, col)
}

// References resolves textDocument/references for the given file position.
func References(ctx context.Context, client *Client, path string, line, col int, includeDecl bool) ([]Location, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	return client.References(ctx, uri, line, col, includeDecl)
}

// Hover resolves textDocument/hover for the given file position.
func Hover(ctx context.Context, client *Client, path string, line, col int) (*Hover, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	return client.Hover(ctx, uri, line, col)
}

// DocumentSymbol resolves textDocument/documentSymbol for the given file.
func DocumentSymbol(ctx context.Context, client *Client, path string) ([]DocumentSymbol, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	return client.DocumentSymbol(ctx, uri)
}

// WorkspaceSymbol resolves workspace/symbol for a free-text query. It does
// not require any file to be open.
func WorkspaceSymbol(ctx context.Context, client *Client, query string) ([]SymbolInformation, error) {
	return client.WorkspaceSymbol(ctx, query)
}

// ImplementationResult wraps an implementation query's locations together
// with an optional readiness hint, set only when the result is empty.
type ImplementationResult struct {
	Locations []Location
	Hint      string
}

// Implementation resolves textDocument/implementation for the given file
// position, opening the file first if needed.
func Implementation(ctx context.Context, client *Client, path string, line, col int) (*ImplementationResult, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	locs, err := client.Implementation(ctx, uri, line, col)
	if err != nil {
		return nil, err
	}
	result := &ImplementationResult{Locations: locs}
	if len(locs) == 0 {
		result.Hint = readinessHint(client)
	}
	return result, nil
}

// PrepareCallHierarchy resolves textDocument/prepareCallHierarchy for the
// given file position, opening the file first if needed.
func PrepareCallHierarchy(ctx context.Context, client *Client, path string, line, col int) ([]CallHierarchyItem, error) {
	uri := PathToURI(path)
	if err := ensureOpen(ctx, client, uri); err != nil {
		return nil, err
	}
	return client.PrepareCallHierarchy(ctx, uri, line, col)
}

// IncomingCallsResult wraps an incoming-calls query with an optional
// readiness hint, set only when the result is empty.
type IncomingCallsResult struct {
	Calls []CallHierarchyIncomingCall
	Hint  string
}

// IncomingCalls resolves callHierarchy/incomingCalls for item.
func IncomingCalls(ctx context.Context, client *Client, item CallHierarchyItem) (*IncomingCallsResult, error) {
	calls, err := client.IncomingCalls(ctx, item)
	if err != nil {
		return nil, err
	}
	result := &IncomingCallsResult{Calls: calls}
	if len(calls) == 0 {
		result.Hint = readinessHint(client)
	}
	return result, nil
}

// OutgoingCallsResult wraps an outgoing-calls query with an optional
// readiness hint, set only when the result is empty.
type OutgoingCallsResult struct {
	Calls []CallHierarchyOutgoingCall
	Hint  string
}

// OutgoingCalls resolves callHierarchy/outgoingCalls for item.
func OutgoingCalls(ctx context.Context, client *Client, item CallHierarchyItem) (*OutgoingCallsResult, error) {
	calls, err := client.OutgoingCalls(ctx, item)
	if err != nil {
		return nil, err
	}
	result := &OutgoingCallsResult{Calls: calls}
	if len(calls) == 0 {
		result.Hint = readinessHint(client)
	}
	return result, nil
}

// WaitForFile blocks until path's URI has received at least one
// publishDiagnostics batch, or timeout elapses.
func WaitForFile(ctx context.Context, client *Client, path string, timeout time.Duration) (bool, error) {
	uri := PathToURI(path)
	return client.WaitForFile(ctx, uri, timeout)
}

// StatusInfo is the read-only status tuple named by the spec's external
// interface: running, project_root, open_files_count, indexing_status_string.
type StatusInfo struct {
	Running              bool   `json:"running"`
	ProjectRoot          string `json:"project_root"`
	OpenFilesCount       int    `json:"open_files_count"`
	IndexingStatusString string `json:"indexing_status_string"`
}

// Status composes the Manager's read-only indicators into the documented
// status tuple.
func Status(m *Manager) StatusInfo {
	return StatusInfo{
		Running:              m.IsRunning(),
		ProjectRoot:          m.ProjectRoot(),
		OpenFilesCount:       m.OpenFilesCount(),
		IndexingStatusString: m.IndexingStatus(),
	}
}
