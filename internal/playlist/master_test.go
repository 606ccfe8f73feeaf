package playlist_test

import (
	"fmt"
	"strings"
	"testing"

	"streamhub/internal/playlist"
	"streamhub/internal/streams"
)

func runningStream(id, name string, bitrateKbps int, targetURL string) *streams.Stream {
	return &streams.Stream{
		ID:          id,
		Name:        name,
		SourceURL:   "rtmp://ingest.example.com/" + id,
		TargetURL:   targetURL,
		Protocol:    streams.ProtocolHLS,
		BitrateKbps: bitrateKbps,
		Status:      streams.StatusRunning,
	}
}

func TestMasterEmptyInputIsHeaderOnly(t *testing.T) {
	g := playlist.NewGenerator(3)

	out := g.Master(nil)
	if out != "#EXTM3U\n#EXT-X-VERSION:3\n" {
		t.Fatalf("unexpected header-only playlist: %q", out)
	}
}

func TestMasterEmitsVariantsInInsertionOrder(t *testing.T) {
	g := playlist.NewGenerator(3)
	input := []*streams.Stream{
		runningStream("a", "Alpha", 1000, ""),
		runningStream("b", "Beta", 2000, ""),
		runningStream("c", "Gamma", 4000, ""),
	}

	out := g.Master(input)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "#EXTM3U" || lines[1] != "#EXT-X-VERSION:3" {
		t.Fatalf("bad header: %q", out)
	}

	variants := lines[2:]
	if len(variants) != 6 {
		t.Fatalf("expected 3 descriptor/URI pairs, got %d lines", len(variants))
	}
	wantBandwidths := []int{1000000, 2000000, 4000000}
	for i, bw := range wantBandwidths {
		descriptor := variants[i*2]
		if !strings.HasPrefix(descriptor, "#EXT-X-STREAM-INF:") {
			t.Fatalf("expected descriptor at line %d, got %q", i*2, descriptor)
		}
		if !strings.Contains(descriptor, fmt.Sprintf("BANDWIDTH=%d", bw)) {
			t.Fatalf("expected bandwidth %d in %q", bw, descriptor)
		}
	}
	if variants[1] != "/streams/a/playlist.m3u8" {
		t.Fatalf("unexpected derived URI: %q", variants[1])
	}
}

func TestMasterUsesTargetURLWhenSet(t *testing.T) {
	g := playlist.NewGenerator(3)
	out := g.Master([]*streams.Stream{
		runningStream("a", "Alpha", 1000, "https://cdn.example.com/live/alpha.m3u8"),
	})
	if !strings.Contains(out, "https://cdn.example.com/live/alpha.m3u8\n") {
		t.Fatalf("expected target URL as variant URI: %q", out)
	}
}

func TestMasterIsDeterministic(t *testing.T) {
	g := playlist.NewGenerator(3)
	input := []*streams.Stream{
		runningStream("a", "Alpha", 1000, ""),
		runningStream("b", "Beta", 2000, ""),
	}
	if g.Master(input) != g.Master(input) {
		t.Fatal("identical input must yield byte-identical output")
	}
}

func TestMasterQuotesNameAttribute(t *testing.T) {
	g := playlist.NewGenerator(3)
	out := g.Master([]*streams.Stream{
		runningStream("a", "BlackRoad Live", 4000, ""),
	})
	if !strings.Contains(out, `NAME="BlackRoad Live"`) {
		t.Fatalf("expected quoted NAME attribute: %q", out)
	}
	if !strings.Contains(out, "BANDWIDTH=4000000") {
		t.Fatalf("expected bandwidth 4000000: %q", out)
	}
}

func TestGeneratorVersionFallback(t *testing.T) {
	g := playlist.NewGenerator(0)
	if !strings.Contains(g.Master(nil), "#EXT-X-VERSION:3") {
		t.Fatal("expected default version 3")
	}

	g7 := playlist.NewGenerator(7)
	if !strings.Contains(g7.Master(nil), "#EXT-X-VERSION:7") {
		t.Fatal("expected configured version 7")
	}
}

func TestVariantLadder(t *testing.T) {
	stream := runningStream("abc", "Alpha", 4000, "")
	cfg := playlist.VariantLadder(stream)

	if cfg.StreamID != "abc" || cfg.TargetBitrateKbps != 4000 {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if len(cfg.Variants) != 3 {
		t.Fatalf("expected 3 rungs, got %d", len(cfg.Variants))
	}
	wantKbps := []int{4000, 2000, 1000}
	wantSuffix := []string{"high", "med", "low"}
	for i, variant := range cfg.Variants {
		if variant.BitrateKbps != wantKbps[i] || variant.Suffix != wantSuffix[i] {
			t.Fatalf("unexpected rung %d: %#v", i, variant)
		}
		if !strings.Contains(variant.URI, "/streams/abc/"+wantSuffix[i]+"/") {
			t.Fatalf("unexpected rung URI: %q", variant.URI)
		}
	}
}
