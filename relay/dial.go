package relay

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

const realtimeAPIVersion = "2025-04-01-preview"

// UpstreamConfig locates the realtime speech-model deployment.
type UpstreamConfig struct {
	Endpoint   string
	Deployment string
	APIKey     string
}

// DialUpstream opens the duplex channel to the speech model.
func DialUpstream(ctx context.Context, cfg UpstreamConfig) (Conn, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/openai/realtime"

	q := u.Query()
	q.Set("deployment", cfg.Deployment)
	q.Set("api-version", realtimeAPIVersion)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("api-key", cfg.APIKey)
	header.Set("accept", "application/json")
	// Supersede the default text+audio modality; only audio comes back.
	header.Set("x-openai-realtime-modality", "audio")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}
