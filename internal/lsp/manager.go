package lsp

import (
	"context"
	"fmt"
	"sync"
)

// Manager is a process-wide single holder for at most one Client, keyed
// to one project root. It guarantees at-most-one concurrent Start: every
// caller racing Get during initialization observes the same resulting
// Client or the same initialization error, following the same
// construct-then-single-flight-init pattern the teacher's MCP client
// manager uses for its own clients.
type Manager struct {
	mu          sync.Mutex
	client      *Client
	projectRoot string
	initCh      chan error
	opts        Options

	// start is the function used to bring a freshly constructed Client up
	// to Ready. It defaults to (*Client).Start (spawn a real subprocess);
	// tests in this package substitute a func that drives startWithIO
	// against an in-memory pipe pair instead.
	start func(ctx context.Context, c *Client, projectRoot string) error
}

// NewManager creates an empty Manager. opts is used to construct the
// Client on the first Get call.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:  opts,
		start: func(ctx context.Context, c *Client, projectRoot string) error { return c.Start(ctx, projectRoot) },
	}
}

// Get returns the warm Client for projectRoot, starting it if necessary.
// If a Client already exists for a different project root, it fails with
// ProjectMismatch; callers must Reset first.
func (m *Manager) Get(ctx context.Context, projectRoot string) (*Client, error) {
	m.mu.Lock()
	if m.client != nil {
		if m.projectRoot != projectRoot {
			m.mu.Unlock()
			return nil, newError(KindProjectMismatch, "get", projectRoot,
				fmt.Errorf("manager is bound to %q", m.projectRoot))
		}
		if m.initCh == nil {
			client := m.client
			m.mu.Unlock()
			return client, nil
		}
		// Initialization in flight: wait on the shared channel below.
		ch := m.initCh
		client := m.client
		m.mu.Unlock()
		select {
		case err := <-ch:
			// Put the result back so the next waiter observes it too.
			ch <- err
			if err != nil {
				return nil, err
			}
			return client, nil
		case <-ctx.Done():
			return nil, newError(KindCancelled, "get", projectRoot, ctx.Err())
		}
	}

	// No client yet: this goroutine becomes the single initializer.
	client := NewClient(m.opts)
	ch := make(chan error, 1)
	m.client = client
	m.projectRoot = projectRoot
	m.initCh = ch
	m.mu.Unlock()

	err := m.start(ctx, client, projectRoot)

	m.mu.Lock()
	m.initCh = nil
	if err != nil {
		// Initialization failed: clear the singleton so a later Get can
		// retry from scratch instead of being stuck bound to a dead Client.
		m.client = nil
		m.projectRoot = ""
	}
	m.mu.Unlock()

	// ch is never closed: it holds the single result, which each waiter
	// takes and puts back, so every waiter sees the same error.
	ch <- err

	if err != nil {
		return nil, err
	}
	return client, nil
}

// Reset tears down the live Client (if any) via shutdown and clears the
// singleton. Idempotent; safe to call when no Client exists.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.projectRoot = ""
	m.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Shutdown(ctx)
}

// IsRunning reports whether a Client exists and is in the Ready state.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	return client != nil && client.State() == StateReady
}

// OpenFilesCount reports the live Client's open-documents count, or 0 if
// there is none.
func (m *Manager) OpenFilesCount() int {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return 0
	}
	return client.OpenFilesCount()
}

// IndexingStatus reports the live Client's indexing status string, or
// "idle" if there is none.
func (m *Manager) IndexingStatus() string {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return "idle"
	}
	return client.IndexingStatusString()
}

// IsIndexing reports whether the live Client is currently indexing.
func (m *Manager) IsIndexing() bool {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return false
	}
	inProgress, _, _ := client.IndexingStatus()
	return inProgress
}

// ProjectRoot reports the project root the Manager is currently bound to,
// or "" if none.
func (m *Manager) ProjectRoot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.projectRoot
}
