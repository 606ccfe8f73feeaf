package testsupport

import (
	"context"
	"testing"

	"streamhub/internal/store"
	"streamhub/internal/streams"
)

// CreateStream inserts a valid stream for tests, defaulting any empty fields.
func CreateStream(t testing.TB, st *store.Store, params store.CreateParams) *streams.Stream {
	t.Helper()

	if params.Name == "" {
		params.Name = "Test Stream"
	}
	if params.SourceURL == "" {
		params.SourceURL = "rtmp://ingest.example.com/live"
	}
	if params.Protocol == "" {
		params.Protocol = "hls"
	}
	if params.BitrateKbps == 0 {
		params.BitrateKbps = 2000
	}

	stream, err := st.CreateStream(context.Background(), params)
	if err != nil {
		t.Fatalf("store.CreateStream: %v", err)
	}
	return stream
}
