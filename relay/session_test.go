package relay

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var errConnClosed = errors.New("use of closed connection")

type frame struct {
	typ  int
	data []byte
	err  error
}

// fakeConn feeds queued frames to ReadMessage and records everything written.
// Close unblocks any pending read, like a real socket.
type fakeConn struct {
	mu     sync.Mutex
	frames chan frame
	done   chan struct{}
	once   sync.Once
	binary [][]byte
	sent   []envelope
}

func newFakeConn(frames ...frame) *fakeConn {
	c := &fakeConn{frames: make(chan frame, len(frames)), done: make(chan struct{})}
	for _, f := range frames {
		c.frames <- f
	}
	return c
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case f := <-c.frames:
		return f.typ, f.data, f.err
	case <-c.done:
		return 0, nil, errConnClosed
	}
}

func (c *fakeConn) WriteMessage(typ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.binary = append(c.binary, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) WriteJSON(v any) error {
	env, ok := v.(envelope)
	if !ok {
		return errors.New("unexpected WriteJSON payload")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, env)
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *fakeConn) envelopes() []envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]envelope(nil), c.sent...)
}

func (c *fakeConn) binaryFrames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.binary...)
}

func runSession(t *testing.T, client, upstream *fakeConn) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- NewSession(client, upstream, "Budget passes", "Parliament approved it.").Run() }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("session did not terminate")
		return nil
	}
}

func TestInboundAudioAndCommit(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	client := newFakeConn(
		frame{typ: websocket.BinaryMessage, data: pcm},
		frame{typ: websocket.TextMessage, data: []byte(CommitToken)},
		frame{err: io.EOF},
	)
	upstream := newFakeConn()

	runSession(t, client, upstream)

	sent := upstream.envelopes()
	if len(sent) != 3 {
		t.Fatalf("upstream received %d messages, want 3 (config, append, commit)", len(sent))
	}
	if sent[0].Type != "session.update" || sent[0].Session == nil {
		t.Errorf("first message = %+v, want session.update config", sent[0])
	}
	if !strings.Contains(sent[0].Session.Instructions, "Budget passes") {
		t.Errorf("instructions %q do not mention the article heading", sent[0].Session.Instructions)
	}
	if got := sent[0].Session.ResponseFormat.Modality; len(got) != 1 || got[0] != "audio" {
		t.Errorf("modality = %v, want [audio]", got)
	}
	if sent[1].Type != "input_audio_buffer.append" {
		t.Errorf("binary frame produced %q, want append envelope", sent[1].Type)
	}
	if sent[1].Audio != base64.StdEncoding.EncodeToString(pcm) {
		t.Errorf("append audio = %q, want base64 of the client frame", sent[1].Audio)
	}
	if sent[2].Type != "input_audio_buffer.commit" || sent[2].Audio != "" {
		t.Errorf("commit token produced %+v, want bare commit envelope", sent[2])
	}
	if !client.isClosed() || !upstream.isClosed() {
		t.Error("both connections must be closed after the session ends")
	}
}

func TestOutboundForwardsOnlyAudioDeltas(t *testing.T) {
	pcm := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	delta := `{"type":"response.audio.delta","audio":"` + base64.StdEncoding.EncodeToString(pcm) + `"}`
	upstream := newFakeConn(
		frame{typ: websocket.TextMessage, data: []byte(`{"type":"response.text.delta","delta":"hello"}`)},
		frame{typ: websocket.TextMessage, data: []byte(`not json at all`)},
		frame{typ: websocket.TextMessage, data: []byte(delta)},
		frame{err: io.EOF},
	)
	client := newFakeConn()

	runSession(t, client, upstream)

	got := client.binaryFrames()
	if len(got) != 1 {
		t.Fatalf("client received %d binary frames, want 1 (only the audio delta)", len(got))
	}
	if !bytes.Equal(got[0], pcm) {
		t.Errorf("decoded audio = %v, want original bytes %v", got[0], pcm)
	}
	if !client.isClosed() || !upstream.isClosed() {
		t.Error("both connections must be closed after the session ends")
	}
}

func TestUpstreamErrorEventEndsSession(t *testing.T) {
	upstream := newFakeConn(
		frame{typ: websocket.TextMessage, data: []byte(`{"type":"error"}`)},
	)
	client := newFakeConn()

	err := runSession(t, client, upstream)
	if err == nil {
		t.Error("expected an error from an upstream error event")
	}
	if !client.isClosed() || !upstream.isClosed() {
		t.Error("both connections must be closed after the session ends")
	}
}

func TestClientNormalCloseIsNotAnError(t *testing.T) {
	client := newFakeConn(
		frame{err: &websocket.CloseError{Code: websocket.CloseNormalClosure}},
	)
	upstream := newFakeConn()

	if err := runSession(t, client, upstream); err != nil {
		t.Errorf("normal client close returned error: %v", err)
	}
}

func TestConfigureFailureClosesClient(t *testing.T) {
	client := newFakeConn()

	sess := NewSession(client, failingConn{}, "h", "d")
	if err := sess.Run(); err == nil {
		t.Error("expected configure error to surface")
	}
	if !client.isClosed() {
		t.Error("client must be closed when upstream configuration fails")
	}
}

type failingConn struct{}

func (failingConn) ReadMessage() (int, []byte, error) { return 0, nil, errConnClosed }
func (failingConn) WriteMessage(int, []byte) error    { return errConnClosed }
func (failingConn) WriteJSON(any) error               { return errConnClosed }
func (failingConn) Close() error                      { return nil }
