package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"streamhub/internal/store"
	"streamhub/internal/streams"
	"streamhub/internal/testsupport"
)

func TestCreateStreamAssignsIDAndCreatedState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stream, err := st.CreateStream(ctx, store.CreateParams{
		Name:        "BlackRoad Live",
		SourceURL:   "rtmp://ingest.example.com/live",
		TargetURL:   "https://cdn.example.com/live/master.m3u8",
		Protocol:    "hls",
		BitrateKbps: 4000,
	})
	if err != nil {
		t.Fatalf("CreateStream failed: %v", err)
	}
	if stream.ID == "" {
		t.Fatal("expected stream ID to be assigned")
	}
	if stream.Status != streams.StatusCreated {
		t.Fatalf("expected created status, got %s", stream.Status)
	}

	fetched, err := st.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.Name != "BlackRoad Live" || fetched.Protocol != streams.ProtocolHLS {
		t.Fatalf("unexpected fetched stream: %#v", fetched)
	}
	if fetched.StartedAt != nil || fetched.StoppedAt != nil {
		t.Fatal("expected started_at and stopped_at unset at creation")
	}
}

func TestCreateStreamValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	cases := []struct {
		name   string
		params store.CreateParams
	}{
		{"empty name", store.CreateParams{SourceURL: "srt://a", Protocol: "srt", BitrateKbps: 1000}},
		{"empty source", store.CreateParams{Name: "x", Protocol: "hls", BitrateKbps: 1000}},
		{"bad protocol", store.CreateParams{Name: "x", SourceURL: "rtmp://a", Protocol: "webrtc", BitrateKbps: 1000}},
		{"zero bitrate", store.CreateParams{Name: "x", SourceURL: "rtmp://a", Protocol: "rtmp", BitrateKbps: 0}},
		{"negative bitrate", store.CreateParams{Name: "x", SourceURL: "rtmp://a", Protocol: "rtmp", BitrateKbps: -500}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := st.CreateStream(ctx, tc.params)
			if !errors.Is(err, streams.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	all, err := st.ListStreams(ctx)
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("failed creations must not persist anything, found %d streams", len(all))
	}
}

func TestGetStreamNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	_, err := st.GetStream(context.Background(), "no-such-id")
	if !errors.Is(err, streams.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStreamRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stream := testsupport.CreateStream(t, st, store.CreateParams{})

	started := time.Now().UTC()
	stream.Status = streams.StatusRunning
	stream.StartedAt = &started
	if err := st.UpdateStream(ctx, stream); err != nil {
		t.Fatalf("UpdateStream failed: %v", err)
	}

	fetched, err := st.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.Status != streams.StatusRunning {
		t.Fatalf("expected running, got %s", fetched.Status)
	}
	if fetched.StartedAt == nil || !fetched.StartedAt.Equal(started) {
		t.Fatalf("expected started_at %v, got %v", started, fetched.StartedAt)
	}
	if fetched.StoppedAt != nil {
		t.Fatal("expected stopped_at unset")
	}
}

func TestUpdateStreamUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ghost := &streams.Stream{
		ID:          "ghost",
		Name:        "Ghost",
		SourceURL:   "rtmp://a",
		Protocol:    streams.ProtocolRTMP,
		BitrateKbps: 1000,
		Status:      streams.StatusCreated,
		CreatedAt:   time.Now().UTC(),
	}
	if err := st.UpdateStream(context.Background(), ghost); !errors.Is(err, streams.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListStreamsFilterAndOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		stream := testsupport.CreateStream(t, st, store.CreateParams{Name: fmt.Sprintf("Stream %d", i)})
		ids = append(ids, stream.ID)
	}

	second, err := st.GetStream(ctx, ids[1])
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	now := time.Now().UTC()
	second.Status = streams.StatusRunning
	second.StartedAt = &now
	if err := st.UpdateStream(ctx, second); err != nil {
		t.Fatalf("UpdateStream failed: %v", err)
	}

	running, err := st.ListStreams(ctx, streams.StatusRunning)
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	if len(running) != 1 || running[0].ID != ids[1] {
		t.Fatalf("expected only second stream running, got %d entries", len(running))
	}

	all, err := st.ListStreams(ctx)
	if err != nil {
		t.Fatalf("ListStreams failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 streams, got %d", len(all))
	}
	for i, stream := range all {
		if stream.ID != ids[i] {
			t.Fatalf("expected creation order preserved at index %d", i)
		}
	}
}

func TestHealthAppendAndTrailingWindow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stream := testsupport.CreateStream(t, st, store.CreateParams{})

	for i := 0; i < 7; i++ {
		sample := &streams.Sample{
			StreamID:    stream.ID,
			Verdict:     streams.VerdictHealthy,
			BitrateKbps: 2000 + i,
			LatencyMS:   50,
		}
		if _, err := st.AppendHealth(ctx, sample); err != nil {
			t.Fatalf("AppendHealth failed: %v", err)
		}
		if sample.ID == 0 {
			t.Fatal("expected sample ID to be assigned")
		}
	}

	window, err := st.ListHealth(ctx, stream.ID, 3)
	if err != nil {
		t.Fatalf("ListHealth failed: %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("expected trailing window of 3, got %d", len(window))
	}
	// Newest last, and the window holds the newest samples.
	if window[0].BitrateKbps != 2004 || window[2].BitrateKbps != 2006 {
		t.Fatalf("unexpected window contents: %d..%d", window[0].BitrateKbps, window[2].BitrateKbps)
	}

	total, err := st.CountHealth(ctx, "")
	if err != nil {
		t.Fatalf("CountHealth failed: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected 7 samples, got %d", total)
	}
}

func TestSegmentsAppendAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	stream := testsupport.CreateStream(t, st, store.CreateParams{})

	for seq := int64(0); seq < 3; seq++ {
		_, err := st.AppendSegment(ctx, &streams.Segment{
			StreamID:     stream.ID,
			Sequence:     seq,
			URI:          fmt.Sprintf("/streams/%s/seg%d.ts", stream.ID, seq),
			DurationSecs: 6,
		})
		if err != nil {
			t.Fatalf("AppendSegment failed: %v", err)
		}
	}

	if _, err := st.AppendSegment(ctx, &streams.Segment{StreamID: "missing", Sequence: 0, URI: "/x.ts"}); !errors.Is(err, streams.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown stream, got %v", err)
	}

	segments, err := st.ListSegments(ctx, stream.ID)
	if err != nil {
		t.Fatalf("ListSegments failed: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i, segment := range segments {
		if segment.Sequence != int64(i) {
			t.Fatalf("expected sequence order, got %d at index %d", segment.Sequence, i)
		}
	}
}

func TestCountsAndAverages(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	bitrates := []int{1000, 3000}
	for _, kbps := range bitrates {
		stream := testsupport.CreateStream(t, st, store.CreateParams{BitrateKbps: kbps})
		now := time.Now().UTC()
		stream.Status = streams.StatusRunning
		stream.StartedAt = &now
		if err := st.UpdateStream(ctx, stream); err != nil {
			t.Fatalf("UpdateStream failed: %v", err)
		}
	}
	testsupport.CreateStream(t, st, store.CreateParams{Protocol: "srt"})

	byStatus, err := st.StatusCounts(ctx)
	if err != nil {
		t.Fatalf("StatusCounts failed: %v", err)
	}
	if byStatus[streams.StatusRunning] != 2 || byStatus[streams.StatusCreated] != 1 {
		t.Fatalf("unexpected status counts: %v", byStatus)
	}

	byProtocol, err := st.ProtocolCounts(ctx)
	if err != nil {
		t.Fatalf("ProtocolCounts failed: %v", err)
	}
	if byProtocol[streams.ProtocolHLS] != 2 || byProtocol[streams.ProtocolSRT] != 1 {
		t.Fatalf("unexpected protocol counts: %v", byProtocol)
	}

	avg, err := st.AvgBitrate(ctx, streams.StatusRunning)
	if err != nil {
		t.Fatalf("AvgBitrate failed: %v", err)
	}
	if avg != 2000 {
		t.Fatalf("expected running average 2000, got %v", avg)
	}

	avgStopped, err := st.AvgBitrate(ctx, streams.StatusStopped)
	if err != nil {
		t.Fatalf("AvgBitrate failed: %v", err)
	}
	if avgStopped != 0 {
		t.Fatalf("expected zero average with no stopped streams, got %v", avgStopped)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	stream := testsupport.CreateStream(t, st, store.CreateParams{Name: "Durable"})
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Schema init is idempotent on reopen.
	st2 := testsupport.MustOpenStore(t, cfg)
	fetched, err := st2.GetStream(context.Background(), stream.ID)
	if err != nil {
		t.Fatalf("GetStream after reopen failed: %v", err)
	}
	if fetched.Name != "Durable" {
		t.Fatalf("unexpected stream after reopen: %#v", fetched)
	}
}
