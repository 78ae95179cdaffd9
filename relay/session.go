package relay

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gorilla/websocket"
)

// CommitToken is the reserved client text frame that flushes the audio buffer
// upstream. Every other client frame is expected to be binary PCM.
const CommitToken = "COMMIT"

const (
	typeSessionUpdate = "session.update"
	typeAppendAudio   = "input_audio_buffer.append"
	typeCommitAudio   = "input_audio_buffer.commit"
	typeAudioDelta    = "response.audio.delta"
	typeError         = "error"
)

// Conn is the subset of *websocket.Conn the relay needs on either side.
type Conn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v any) error
	Close() error
}

// envelope is the JSON message frame shared by both directions of the
// upstream realtime channel.
type envelope struct {
	Type    string         `json:"type"`
	Audio   string         `json:"audio,omitempty"`
	Session *sessionConfig `json:"session,omitempty"`
}

type sessionConfig struct {
	ResponseFormat responseFormat `json:"response_format"`
	Instructions   string         `json:"instructions"`
}

type responseFormat struct {
	Modality []string `json:"modality"`
}

// Session bridges one client audio connection to one upstream speech-model
// connection. Each direction runs as its own goroutine for the life of the
// connection; the first error on either side tears both down. Sessions are
// never reconnected, the client starts over.
type Session struct {
	client      Conn
	upstream    Conn
	heading     string
	description string
}

func NewSession(client, upstream Conn, heading, description string) *Session {
	return &Session{client: client, upstream: upstream, heading: heading, description: description}
}

// Run configures the upstream session and relays audio both ways until either
// side closes or fails. Both connections are closed before Run returns.
func (s *Session) Run() error {
	if err := s.configure(); err != nil {
		s.client.Close()
		s.upstream.Close()
		return fmt.Errorf("configuring upstream session: %w", err)
	}

	errc := make(chan error, 2)
	go func() { errc <- s.pumpInbound() }()
	go func() { errc <- s.pumpOutbound() }()

	err := <-errc
	// Closing both conns unblocks whichever pump is still reading.
	s.client.Close()
	s.upstream.Close()
	<-errc

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

// configure scopes the model to one article. Sent once; the session is never
// renegotiated.
func (s *Session) configure() error {
	instructions := fmt.Sprintf(
		"You are a friendly news explainer. Only discuss this article: '%s'. %s Politely refuse other topics.",
		s.heading, s.description,
	)
	return s.upstream.WriteJSON(envelope{
		Type: typeSessionUpdate,
		Session: &sessionConfig{
			ResponseFormat: responseFormat{Modality: []string{"audio"}},
			Instructions:   instructions,
		},
	})
}

// pumpInbound forwards client audio upstream. Binary frames become append
// envelopes, the commit token becomes a commit envelope, anything else is
// dropped.
func (s *Session) pumpInbound() error {
	for {
		msgType, data, err := s.client.ReadMessage()
		if err != nil {
			return err
		}
		switch {
		case msgType == websocket.BinaryMessage:
			err = s.upstream.WriteJSON(envelope{
				Type:  typeAppendAudio,
				Audio: base64.StdEncoding.EncodeToString(data),
			})
		case msgType == websocket.TextMessage && string(data) == CommitToken:
			err = s.upstream.WriteJSON(envelope{Type: typeCommitAudio})
		default:
			log.Printf("relay: ignoring client frame type %d", msgType)
		}
		if err != nil {
			return err
		}
	}
}

// pumpOutbound forwards upstream audio deltas to the client as raw binary
// frames. Non-audio events are dropped; malformed events are logged and
// dropped; an explicit error event ends the session.
func (s *Session) pumpOutbound() error {
	for {
		msgType, data, err := s.upstream.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var event envelope
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("relay: dropping malformed upstream event: %v", err)
			continue
		}
		switch event.Type {
		case typeAudioDelta:
			pcm, err := base64.StdEncoding.DecodeString(event.Audio)
			if err != nil {
				log.Printf("relay: dropping audio delta with bad encoding: %v", err)
				continue
			}
			if err := s.client.WriteMessage(websocket.BinaryMessage, pcm); err != nil {
				return err
			}
		case typeError:
			return fmt.Errorf("upstream error event: %s", data)
		}
	}
}
