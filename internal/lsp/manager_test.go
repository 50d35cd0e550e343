package lsp

import (
	"bufio"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// autoRespondingServer answers every request it sees from c with an empty
// object/array result, enough to carry a Client through the
// initialize/initialized handshake and a later shutdown without a
// fakeServer the test has to script by hand. It runs until its read side
// closes.
func autoRespondingServer(r io.Reader, w io.Writer) {
	br := bufio.NewReader(r)
	var wMu sync.Mutex
	for {
		msg, err := ReadFrame(br)
		if err != nil {
			return
		}
		if msg.ID == nil {
			continue
		}
		var result interface{} = map[string]interface{}{}
		if msg.Method != "initialize" && msg.Method != "shutdown" {
			result = []interface{}{}
		}
		wMu.Lock()
		_ = WriteFrame(w, map[string]interface{}{"jsonrpc": "2.0", "id": *msg.ID, "result": result})
		wMu.Unlock()
	}
}

func newInMemoryManager(startCount *int32) *Manager {
	m := NewManager(Options{Timeout: 2 * time.Second, Logf: func(string, ...interface{}) {}})
	m.start = func(ctx context.Context, c *Client, projectRoot string) error {
		if startCount != nil {
			atomic.AddInt32(startCount, 1)
		}
		clientStdinR, clientStdinW := io.Pipe()
		serverStdoutR, serverStdoutW := io.Pipe()
		go autoRespondingServer(clientStdinR, serverStdoutW)
		return c.startWithIO(ctx, projectRoot, clientStdinW, serverStdoutR, func() error { return nil })
	}
	return m
}

func TestManagerGetReturnsSameClientForSameProjectRoot(t *testing.T) {
	m := newInMemoryManager(nil)
	ctx := context.Background()

	c1, err := m.Get(ctx, "/project")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	c2, err := m.Get(ctx, "/project")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if c1 != c2 {
		t.Error("Get returned different Clients for the same project root")
	}
	if m.ProjectRoot() != "/project" {
		t.Errorf("ProjectRoot() = %q, want /project", m.ProjectRoot())
	}
}

func TestManagerGetRejectsProjectMismatch(t *testing.T) {
	m := newInMemoryManager(nil)
	ctx := context.Background()

	if _, err := m.Get(ctx, "/project-a"); err != nil {
		t.Fatalf("Get(/project-a): %v", err)
	}
	_, err := m.Get(ctx, "/project-b")
	if !IsKind(err, KindProjectMismatch) {
		t.Fatalf("err = %v, want KindProjectMismatch", err)
	}
}

func TestManagerSingleFlightInitializesOnce(t *testing.T) {
	var startCount int32
	m := newInMemoryManager(&startCount)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	clients := make([]*Client, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = m.Get(ctx, "/project")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Get #%d: %v", i, err)
		}
		if clients[i] != clients[0] {
			t.Errorf("Get #%d returned a different Client", i)
		}
	}
	if got := atomic.LoadInt32(&startCount); got != 1 {
		t.Errorf("start invoked %d times, want exactly 1", got)
	}
}

func TestManagerResetThenGetYieldsFreshClient(t *testing.T) {
	var startCount int32
	m := newInMemoryManager(&startCount)
	ctx := context.Background()

	first, err := m.Get(ctx, "/project")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if err := first.Open(ctx, "file:///project/a.cpp", "int x;", "cpp"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first.OpenFilesCount() != 1 {
		t.Fatalf("OpenFilesCount() = %d, want 1", first.OpenFilesCount())
	}

	if err := m.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.IsRunning() {
		t.Error("IsRunning() = true after Reset")
	}
	if m.ProjectRoot() != "" {
		t.Errorf("ProjectRoot() = %q after Reset, want empty", m.ProjectRoot())
	}

	second, err := m.Get(ctx, "/project")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if second == first {
		t.Error("Get after Reset returned the same Client instance")
	}
	if second.OpenFilesCount() != 0 {
		t.Errorf("fresh Client OpenFilesCount() = %d, want 0", second.OpenFilesCount())
	}
	if atomic.LoadInt32(&startCount) != 2 {
		t.Errorf("start invoked %d times, want 2 (one per Get binding)", startCount)
	}
}

func TestManagerIsRunningAndStatusReflectLiveClient(t *testing.T) {
	m := newInMemoryManager(nil)
	ctx := context.Background()

	if m.IsRunning() {
		t.Error("IsRunning() = true before any Get")
	}
	if _, err := m.Get(ctx, "/project"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !m.IsRunning() {
		t.Error("IsRunning() = false after successful Get")
	}

	status := Status(m)
	if !status.Running || status.ProjectRoot != "/project" || status.IndexingStatusString != "idle" {
		t.Errorf("Status = %+v, unexpected", status)
	}
}
