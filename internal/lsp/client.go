package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// State is a Client's position in its lifecycle state machine. Transitions
// are monotonic: Created -> Starting -> Initializing -> Ready ->
// ShuttingDown -> Closed, or Created -> Failed at any point during setup.
type State int32

const (
	StateCreated State = iota
	StateStarting
	StateInitializing
	StateReady
	StateShuttingDown
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateStarting:
		return "Starting"
	case StateInitializing:
		return "Initializing"
	case StateReady:
		return "Ready"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateClosed:
		return "Closed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Options configures a Client. The core never reads these from a file or
// flag itself; a collaborator (the CLI, in this repo) loads them and
// passes them in explicitly.
type Options struct {
	ServerPath string
	ServerArgs []string
	Timeout    time.Duration
	Logf       func(format string, args ...interface{})
}

func (o Options) withDefaults() Options {
	if o.ServerPath == "" {
		o.ServerPath = "clangd"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Logf == nil {
		o.Logf = func(format string, args ...interface{}) { log.Printf("[lsp] "+format, args...) }
	}
	return o
}

type pendingRequest struct {
	ch chan rpcResult
}

type rpcResult struct {
	raw json.RawMessage
	err error
}

// Client owns one clangd subprocess: it serializes writes, demultiplexes
// reads, correlates responses to in-flight requests, and tracks the
// readiness state that plain LSP does not expose on its own.
type Client struct {
	opts Options

	state int32 // State, accessed atomically

	writeMu   sync.Mutex
	stdin     io.WriteCloser
	closeOnce sync.Once
	closeFn   func() error // blocks until the subprocess has exited on its own
	killFn    func()       // forcefully terminates the subprocess; used only after the grace deadline

	idSeq int64 // atomic

	pendingMu sync.Mutex
	pending   map[int64]*pendingRequest

	readyMu sync.RWMutex
	ready   map[string]struct{}

	waiterMu sync.Mutex
	waiters  map[string]chan struct{}

	openMu sync.RWMutex
	open   map[string]struct{}

	indexMu     sync.RWMutex
	indexing    bool
	percentage  *int
	message     string
	indexTokens map[string]struct{}

	projectRoot string
}

// NewClient constructs an idle Client in the Created state. Call Start to
// spawn the subprocess and perform the initialize handshake.
func NewClient(opts Options) *Client {
	return &Client{
		opts:        opts.withDefaults(),
		pending:     make(map[int64]*pendingRequest),
		ready:       make(map[string]struct{}),
		waiters:     make(map[string]chan struct{}),
		open:        make(map[string]struct{}),
		indexTokens: make(map[string]struct{}),
	}
}

func (c *Client) State() State { return State(atomic.LoadInt32(&c.state)) }

func (c *Client) setState(s State) { atomic.StoreInt32(&c.state, int32(s)) }

// transitionTo atomically moves the Client from `from` to `to`, returning
// false (and leaving state unchanged) if the current state isn't `from`.
func (c *Client) transitionTo(from, to State) bool {
	return atomic.CompareAndSwapInt32(&c.state, int32(from), int32(to))
}

// Start spawns the clangd subprocess with stdio pipes, begins the reader,
// and performs the initialize/initialized handshake against projectRoot.
// Failure at any step transitions the Client to Failed and kills the
// subprocess if it was started.
func (c *Client) Start(ctx context.Context, projectRoot string) error {
	if s := c.State(); s != StateCreated {
		return newError(KindFatal, "start", "", fmt.Errorf("start called from state %s", s))
	}
	cmd := exec.Command(c.opts.ServerPath, c.opts.ServerArgs...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		c.setState(StateFailed)
		return newError(KindSpawnError, "start", "", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		c.setState(StateFailed)
		return newError(KindSpawnError, "start", "", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		c.setState(StateFailed)
		return newError(KindSpawnError, "start", "", err)
	}

	// closeFn blocks until the subprocess exits on its own (e.g. in
	// response to the exit notification); killFn forces termination and is
	// only invoked by Shutdown after the grace deadline elapses, or
	// immediately by fail for an already-broken transport.
	closeFn := func() error {
		return cmd.Wait()
	}
	c.killFn = func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
	return c.startWithIO(ctx, projectRoot, stdin, stdout, closeFn)
}

// startWithIO is the transport-agnostic half of Start, split out so tests
// can attach a Client to an in-memory pipe pair (a scripted fake server)
// instead of a real subprocess.
func (c *Client) startWithIO(ctx context.Context, projectRoot string, stdin io.WriteCloser, stdout io.Reader, closeFn func() error) error {
	if !c.transitionTo(StateCreated, StateStarting) {
		return newError(KindFatal, "start", "", fmt.Errorf("start called from state %s", c.State()))
	}

	c.stdin = stdin
	c.closeFn = closeFn
	reader := bufio.NewReader(stdout)
	go c.readLoop(reader)

	c.setState(StateInitializing)

	if err := c.initializeHandshake(ctx, projectRoot); err != nil {
		c.fail(err)
		return err
	}

	c.projectRoot = projectRoot
	c.setState(StateReady)
	return nil
}

func (c *Client) initializeHandshake(ctx context.Context, projectRoot string) error {
	rootURI := "file://" + projectRoot
	params := map[string]interface{}{
		"processId": os.Getpid(),
		"rootUri":   rootURI,
		"capabilities": map[string]interface{}{
			"window": map[string]interface{}{
				"workDoneProgress": true,
			},
			"textDocument": map[string]interface{}{
				"publishDiagnostics": map[string]interface{}{},
			},
		},
		"workspaceFolders": []map[string]interface{}{
			{"uri": rootURI, "name": projectRoot},
		},
	}

	if _, err := c.sendRequest(ctx, "initialize", params, true); err != nil {
		return newError(KindFatal, "initialize", "", err)
	}
	if err := c.sendNotification("initialized", map[string]interface{}{}); err != nil {
		return newError(KindFatal, "initialized", "", err)
	}
	return nil
}

// ---------------------------------------------------------------------
// Request/notification plumbing
// ---------------------------------------------------------------------

// sendRequest allocates the next id, registers a pending slot, writes the
// frame, and waits for its completion or timeout/cancellation. allowInit
// permits sending while still in StateInitializing (used only by the
// initialize handshake) or StateShuttingDown (used only by the shutdown
// request itself).
func (c *Client) sendRequest(ctx context.Context, method string, params interface{}, allowInit bool) (json.RawMessage, error) {
	state := c.State()
	if state != StateReady && !(allowInit && (state == StateInitializing || state == StateShuttingDown)) {
		return nil, newError(KindNotReady, method, "", fmt.Errorf("client is in state %s", state))
	}

	id := atomic.AddInt64(&c.idSeq, 1)
	slot := &pendingRequest{ch: make(chan rpcResult, 1)}

	c.pendingMu.Lock()
	c.pending[id] = slot
	c.pendingMu.Unlock()

	req := rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}

	c.writeMu.Lock()
	err := WriteFrame(c.stdin, req)
	c.writeMu.Unlock()
	if err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return nil, newError(KindFatal, method, "", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	select {
	case res := <-slot.ch:
		if res.err != nil {
			return nil, res.err
		}
		return res.raw, nil
	case <-timeoutCtx.Done():
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		if ctx.Err() != nil {
			return nil, newError(KindCancelled, method, "", ctx.Err())
		}
		return nil, newError(KindTimeout, method, "", timeoutCtx.Err())
	}
}

// sendNotification writes a notification frame; it only suspends during
// the write, never waiting on a response (LSP notifications have none).
func (c *Client) sendNotification(method string, params interface{}) error {
	n := rpcNotification{JSONRPC: "2.0", Method: method, Params: params}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := WriteFrame(c.stdin, n); err != nil {
		return newError(KindFatal, method, "", err)
	}
	return nil
}

func (c *Client) requestJSON(ctx context.Context, method string, params interface{}, out interface{}) error {
	raw, err := c.sendRequest(ctx, method, params, false)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newError(KindProtocolError, method, "", err)
	}
	return nil
}

// ---------------------------------------------------------------------
// Reader loop and dispatch
// ---------------------------------------------------------------------

func (c *Client) readLoop(r *bufio.Reader) {
	for {
		msg, err := ReadFrame(r)
		if err != nil {
			if err == io.EOF {
				c.fail(newError(KindTransportEOF, "", "", err))
			} else {
				c.fail(newError(KindFramingError, "", "", err))
			}
			return
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg *rpcMessage) {
	if msg.ID != nil {
		id := *msg.ID
		c.pendingMu.Lock()
		slot, ok := c.pending[id]
		if ok {
			delete(c.pending, id)
		}
		c.pendingMu.Unlock()

		if !ok {
			// Spurious response: no pending slot, or it already timed out.
			c.opts.Logf("dropping response for unknown or expired id %d", id)
			return
		}

		if msg.Error != nil {
			slot.ch <- rpcResult{err: newError(KindServerError, "", "", fmt.Errorf("%s", msg.Error.Message))}
		} else {
			slot.ch <- rpcResult{raw: msg.Result}
		}
		return
	}

	switch msg.Method {
	case "textDocument/publishDiagnostics":
		var params publishDiagnosticsParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			c.opts.Logf("protocol error decoding publishDiagnostics: %v", err)
			return
		}
		c.markFileReady(params.URI)

	case "$/progress":
		var params progressParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			c.opts.Logf("protocol error decoding $/progress: %v", err)
			return
		}
		c.handleProgress(params)

	case "window/logMessage", "window/showMessage":
		// Surfaced only via the logging collaborator.
		c.opts.Logf("%s: %s", msg.Method, string(msg.Params))

	default:
		// Unknown notifications are ignored by the core.
	}
}

func (c *Client) markFileReady(uri string) {
	c.readyMu.Lock()
	c.ready[uri] = struct{}{}
	c.readyMu.Unlock()

	c.waiterMu.Lock()
	if ch, ok := c.waiters[uri]; ok {
		select {
		case <-ch:
			// already signalled; no-op
		default:
			close(ch)
		}
	}
	c.waiterMu.Unlock()
}

// handleProgress drives the indexing-status tuple from a $/progress
// notification. Per LSP, only the "begin" value carries a title; "report"
// and "end" values for the same token carry none. The "index"/"background"
// title filter is therefore applied only at "begin"; once a token is
// recognized there, its later "report"/"end" values are tracked by token
// instead of being re-filtered by a title that no longer exists.
func (c *Client) handleProgress(p progressParams) {
	token := fmt.Sprint(p.Token)

	c.indexMu.Lock()
	defer c.indexMu.Unlock()

	switch p.Value.Kind {
	case "begin":
		title := strings.ToLower(p.Value.Title)
		if !strings.Contains(title, "index") && !strings.Contains(title, "background") {
			return
		}
		c.indexTokens[token] = struct{}{}
		c.indexing = true
		c.percentage = nil
		c.message = p.Value.Message
	case "report":
		if _, ok := c.indexTokens[token]; !ok {
			return
		}
		c.percentage = p.Value.Percentage
		c.message = p.Value.Message
	case "end":
		if _, ok := c.indexTokens[token]; !ok {
			return
		}
		delete(c.indexTokens, token)
		if len(c.indexTokens) == 0 {
			c.indexing = false
			c.percentage = nil
		}
	}
}

// ---------------------------------------------------------------------
// Shutdown
// ---------------------------------------------------------------------

// Shutdown sends the LSP shutdown/exit sequence, waits for the subprocess
// to exit up to a grace deadline, then kills it, and sweeps the pending
// request table. It is idempotent and safe to call from any state other
// than already-Closed.
func (c *Client) Shutdown(ctx context.Context) error {
	var shutdownErr error
	c.closeOnce.Do(func() {
		prev := c.State()
		c.setState(StateShuttingDown)

		if prev == StateReady {
			shutdownCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
			_, err := c.sendRequest(shutdownCtx, "shutdown", nil, true)
			cancel()
			if err != nil {
				c.opts.Logf("shutdown request failed: %v", err)
			} else {
				_ = c.sendNotification("exit", nil)
			}
		}

		if c.stdin != nil {
			_ = c.stdin.Close()
		}
		if c.closeFn != nil {
			done := make(chan error, 1)
			go func() { done <- c.closeFn() }()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				// Grace period elapsed without a clean exit: kill, then
				// wait for the same closeFn call to observe it.
				if c.killFn != nil {
					c.killFn()
				}
				<-done
			}
		}

		c.sweepPending(newError(KindCancelled, "", "", fmt.Errorf("client shutting down")))
		c.setState(StateClosed)
	})
	return shutdownErr
}

func (c *Client) fail(cause *Error) {
	c.sweepPending(newError(KindCancelled, "", "", cause))
	c.setState(StateFailed)
	// A fatal transport failure gets no grace period: the transport is
	// already broken, so kill outright instead of waiting on a clean exit.
	if c.killFn != nil {
		c.killFn()
	}
	if c.closeFn != nil {
		go c.closeFn()
	}
}

func (c *Client) sweepPending(cause *Error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, slot := range c.pending {
		slot.ch <- rpcResult{err: cause}
		delete(c.pending, id)
	}
}

// ---------------------------------------------------------------------
// Document lifecycle
// ---------------------------------------------------------------------

// Open sends textDocument/didOpen for uri with the given full text and
// language tag, and records it in the open-documents set.
func (c *Client) Open(ctx context.Context, uri, text, languageID string) error {
	if c.State() != StateReady {
		return newError(KindNotReady, "textDocument/didOpen", uri, nil)
	}

	c.openMu.Lock()
	if _, exists := c.open[uri]; exists {
		c.openMu.Unlock()
		return newError(KindAlreadyOpen, "textDocument/didOpen", uri, nil)
	}
	c.open[uri] = struct{}{}
	c.openMu.Unlock()

	params := didOpenParams{TextDocument: textDocumentItem{
		URI: uri, LanguageID: languageID, Version: 1, Text: text,
	}}
	if err := c.sendNotification("textDocument/didOpen", params); err != nil {
		c.openMu.Lock()
		delete(c.open, uri)
		c.openMu.Unlock()
		return err
	}
	return nil
}

// Close sends textDocument/didClose for uri, returning open-documents to
// its prior state.
func (c *Client) Close(ctx context.Context, uri string) error {
	if c.State() != StateReady {
		return newError(KindNotReady, "textDocument/didClose", uri, nil)
	}

	c.openMu.Lock()
	if _, exists := c.open[uri]; !exists {
		c.openMu.Unlock()
		return newError(KindNotOpen, "textDocument/didClose", uri, nil)
	}
	delete(c.open, uri)
	c.openMu.Unlock()

	params := didCloseParams{TextDocument: textDocumentIdentifier{URI: uri}}
	return c.sendNotification("textDocument/didClose", params)
}

func (c *Client) IsOpen(uri string) bool {
	c.openMu.RLock()
	defer c.openMu.RUnlock()
	_, ok := c.open[uri]
	return ok
}

func (c *Client) OpenFilesCount() int {
	c.openMu.RLock()
	defer c.openMu.RUnlock()
	return len(c.open)
}

func (c *Client) requireOpen(method, uri string) error {
	if !c.IsOpen(uri) {
		return newError(KindNotOpen, method, uri, nil)
	}
	return nil
}

// ---------------------------------------------------------------------
// Position queries
// ---------------------------------------------------------------------

func (c *Client) Definition(ctx context.Context, uri string, line, col int) ([]Location, error) {
	const method = "textDocument/definition"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     Position{Line: line, Character: col},
	}
	var out []Location
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) References(ctx context.Context, uri string, line, col int, includeDecl bool) ([]Location, error) {
	const method = "textDocument/references"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := referenceParams{
		textDocumentPositionParams: textDocumentPositionParams{
			TextDocument: textDocumentIdentifier{URI: uri},
			Position:     Position{Line: line, Character: col},
		},
		Context: referenceContext{IncludeDeclaration: includeDecl},
	}
	var out []Location
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Hover(ctx context.Context, uri string, line, col int) (*Hover, error) {
	const method = "textDocument/hover"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     Position{Line: line, Character: col},
	}
	var raw struct {
		Contents json.RawMessage `json:"contents"`
		Range    *Range          `json:"range,omitempty"`
	}
	rawResult, err := c.sendRequest(ctx, method, params, false)
	if err != nil {
		return nil, err
	}
	if len(rawResult) == 0 || string(rawResult) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(rawResult, &raw); err != nil {
		return nil, newError(KindProtocolError, method, uri, err)
	}
	return &Hover{Contents: renderHoverContents(raw.Contents), Range: raw.Range}, nil
}

// renderHoverContents accepts any of the LSP-legal hover shapes (plain
// string, {language,value} MarkedString, or MarkupContent) and flattens
// it to displayable text; clangd uses MarkupContent.
func renderHoverContents(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var markup struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &markup); err == nil && markup.Value != "" {
		return markup.Value
	}
	return string(raw)
}

func (c *Client) DocumentSymbol(ctx context.Context, uri string) ([]DocumentSymbol, error) {
	const method = "textDocument/documentSymbol"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := map[string]interface{}{"textDocument": textDocumentIdentifier{URI: uri}}
	var out []DocumentSymbol
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WorkspaceSymbol(ctx context.Context, query string) ([]SymbolInformation, error) {
	const method = "workspace/symbol"
	if c.State() != StateReady {
		return nil, newError(KindNotReady, method, "", nil)
	}
	params := workspaceSymbolParams{Query: query}
	var out []SymbolInformation
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Implementation(ctx context.Context, uri string, line, col int) ([]Location, error) {
	const method = "textDocument/implementation"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     Position{Line: line, Character: col},
	}
	var out []Location
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PrepareCallHierarchy(ctx context.Context, uri string, line, col int) ([]CallHierarchyItem, error) {
	const method = "textDocument/prepareCallHierarchy"
	if err := c.requireOpen(method, uri); err != nil {
		return nil, err
	}
	params := textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     Position{Line: line, Character: col},
	}
	var out []CallHierarchyItem
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) IncomingCalls(ctx context.Context, item CallHierarchyItem) ([]CallHierarchyIncomingCall, error) {
	const method = "callHierarchy/incomingCalls"
	if c.State() != StateReady {
		return nil, newError(KindNotReady, method, item.URI, nil)
	}
	params := callHierarchyIncomingParams{Item: item}
	var out []CallHierarchyIncomingCall
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OutgoingCalls(ctx context.Context, item CallHierarchyItem) ([]CallHierarchyOutgoingCall, error) {
	const method = "callHierarchy/outgoingCalls"
	if c.State() != StateReady {
		return nil, newError(KindNotReady, method, item.URI, nil)
	}
	params := callHierarchyOutgoingParams{Item: item}
	var out []CallHierarchyOutgoingCall
	if err := c.requestJSON(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------
// Readiness
// ---------------------------------------------------------------------

// WaitForFile blocks until uri has received at least one publishDiagnostics
// batch, or timeout elapses. It returns true immediately if the URI is
// already in the file-ready set.
func (c *Client) WaitForFile(ctx context.Context, uri string, timeout time.Duration) (bool, error) {
	if c.State() != StateReady {
		return false, newError(KindNotReady, "wait_for_file", uri, nil)
	}

	c.readyMu.RLock()
	_, ready := c.ready[uri]
	c.readyMu.RUnlock()
	if ready {
		return true, nil
	}

	c.waiterMu.Lock()
	ch, ok := c.waiters[uri]
	if !ok {
		ch = make(chan struct{})
		c.waiters[uri] = ch
	}
	c.waiterMu.Unlock()

	// Re-check after registering the waiter in case publishDiagnostics
	// landed between the first check and registration.
	c.readyMu.RLock()
	_, ready = c.ready[uri]
	c.readyMu.RUnlock()
	if ready {
		return true, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-ch:
		return true, nil
	case <-waitCtx.Done():
		return false, nil
	}
}

func (c *Client) IsFileReady(uri string) bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	_, ok := c.ready[uri]
	return ok
}

// IndexingStatus returns the current (in_progress, percentage, message)
// tuple rolled up from $/progress notifications.
func (c *Client) IndexingStatus() (bool, *int, string) {
	c.indexMu.RLock()
	defer c.indexMu.RUnlock()
	return c.indexing, c.percentage, c.message
}

// IndexingStatusString renders the tuple as the three documented strings:
// "idle", "indexing", or "indexing (NN%)".
func (c *Client) IndexingStatusString() string {
	inProgress, pct, _ := c.IndexingStatus()
	if !inProgress {
		return "idle"
	}
	if pct != nil {
		return fmt.Sprintf("indexing (%d%%)", *pct)
	}
	return "indexing"
}

func (c *Client) ProjectRoot() string { return c.projectRoot }
