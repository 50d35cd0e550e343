package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestWriteFrameThenReadFrameRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	msg := rpcRequest{JSONRPC: "2.0", ID: 1, Method: "textDocument/references", Params: map[string]int{"x": 1}}

	if err := WriteFrame(&buf, msg); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	got, err := ReadFrame(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if got.Method != "textDocument/references" {
		t.Errorf("Method = %q, want %q", got.Method, "textDocument/references")
	}
	if got.ID == nil || *got.ID != 1 {
		t.Errorf("ID = %v, want 1", got.ID)
	}
}

func TestReadFrameHeaderParse(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"result":[]}`
	raw := fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
	msg, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if msg.ID == nil || *msg.ID != 1 {
		t.Fatalf("ID = %v, want 1", msg.ID)
	}
	var result []interface{}
	if err := json.Unmarshal(msg.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("result = %v, want empty", result)
	}
}

func TestReadFrameIgnoresUnknownHeadersCaseInsensitively(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"initialized","params":{}}`
	raw := fmt.Sprintf("content-type: application/vscode-jsonrpc; charset=utf-8\r\nContent-Length: %d\r\n\r\n%s", len(body), body)
	msg, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if msg.Method != "initialized" {
		t.Errorf("Method = %q, want initialized", msg.Method)
	}
}

func TestReadFrameMissingContentLengthIsFramingError(t *testing.T) {
	raw := "Content-Type: application/json\r\n\r\n{}"
	_, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError, got %T: %v", err, err)
	}
}

func TestReadFrameZeroLengthBodyIsFramingError(t *testing.T) {
	raw := "Content-Length: 0\r\n\r\n"
	_, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError for zero-length body, got %T: %v", err, err)
	}
}

func TestReadFrameShortReadMidFrameIsFramingError(t *testing.T) {
	raw := "Content-Length: 100\r\n\r\n{\"too\":\"short\"}"
	_, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError for short read, got %T: %v", err, err)
	}
}

func TestReadFrameMalformedHeaderLineIsFramingError(t *testing.T) {
	raw := "this is not a header\r\n\r\n{}"
	_, err := ReadFrame(bufio.NewReader(strings.NewReader(raw)))
	if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError for malformed header, got %T: %v", err, err)
	}
}

func TestReadFrameCleanEOFBetweenFrames(t *testing.T) {
	_, err := ReadFrame(bufio.NewReader(strings.NewReader("")))
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestWriteFrameMultipleMessagesStaySeparable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, rpcRequest{JSONRPC: "2.0", ID: 1, Method: "a"}); err != nil {
		t.Fatalf("WriteFrame 1: %v", err)
	}
	if err := WriteFrame(&buf, rpcRequest{JSONRPC: "2.0", ID: 2, Method: "b"}); err != nil {
		t.Fatalf("WriteFrame 2: %v", err)
	}

	r := bufio.NewReader(&buf)
	first, err := ReadFrame(r)
	if err != nil {
		t.Fatalf("ReadFrame 1: %v", err)
	}
	second, err := ReadFrame(r)
	if err != nil {
		t.Fatalf("ReadFrame 2: %v", err)
	}
	if first.Method != "a" || second.Method != "b" {
		t.Errorf("methods = %q, %q; want a, b", first.Method, second.Method)
	}
}
