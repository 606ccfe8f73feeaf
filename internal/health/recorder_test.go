package health_test

import (
	"context"
	"errors"
	"testing"

	"streamhub/internal/config"
	"streamhub/internal/health"
	"streamhub/internal/lifecycle"
	"streamhub/internal/store"
	"streamhub/internal/streams"
	"streamhub/internal/testsupport"
)

type fixture struct {
	store      *store.Store
	controller *lifecycle.Controller
	recorder   *health.Recorder
	policy     config.Health
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)
	controller := lifecycle.NewController(st, nil)
	recorder := health.NewRecorder(st, controller.Degrader(), cfg.Health, nil)
	return &fixture{store: st, controller: controller, recorder: recorder, policy: cfg.Health}
}

func (f *fixture) runningStream(t *testing.T, bitrateKbps int) *streams.Stream {
	t.Helper()
	stream := testsupport.CreateStream(t, f.store, store.CreateParams{BitrateKbps: bitrateKbps})
	started, err := f.controller.Start(context.Background(), stream.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return started
}

func TestRecordStoresSampleAndKeepsRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stream := f.runningStream(t, 4000)

	sample, err := f.recorder.Record(ctx, stream.ID, health.Measurement{
		BitrateKbps:   3800,
		DroppedFrames: 2,
		LatencyMS:     95,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if sample.ID == 0 {
		t.Fatal("expected sample to be persisted with an id")
	}
	if sample.Verdict != streams.VerdictHealthy {
		t.Fatalf("expected healthy verdict, got %s", sample.Verdict)
	}

	fetched, err := f.store.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.Status != streams.StatusRunning {
		t.Fatalf("values within thresholds must not change status, got %s", fetched.Status)
	}
}

func TestRecordRejectsNonRunningStream(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := testsupport.CreateStream(t, f.store, store.CreateParams{})
	if _, err := f.recorder.Record(ctx, created.ID, health.Measurement{}); !errors.Is(err, streams.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for created stream, got %v", err)
	}

	stream := f.runningStream(t, 2000)
	if _, err := f.controller.Stop(ctx, stream.ID); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := f.recorder.Record(ctx, stream.ID, health.Measurement{}); !errors.Is(err, streams.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for stopped stream, got %v", err)
	}

	// Neither rejected call may append a sample.
	count, err := f.store.CountHealth(ctx, "")
	if err != nil {
		t.Fatalf("CountHealth failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no samples, found %d", count)
	}
}

func TestRecordRejectsNegativeMeasurements(t *testing.T) {
	f := newFixture(t)
	stream := f.runningStream(t, 2000)

	_, err := f.recorder.Record(context.Background(), stream.ID, health.Measurement{DroppedFrames: -1})
	if !errors.Is(err, streams.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLowBitrateWindowDegradesToError(t *testing.T) {
	f := newFixture(t, testsupport.WithHealthWindow(3))
	ctx := context.Background()
	stream := f.runningStream(t, 4000)

	// Nominal 4000, ratio 0.5 => floor 2000. Every sample reports 1500.
	for i := 0; i < f.policy.WindowSize; i++ {
		sample, err := f.recorder.Record(ctx, stream.ID, health.Measurement{BitrateKbps: 1500})
		if err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
		if sample == nil {
			t.Fatal("sample must be returned even when degradation fires")
		}

		fetched, err := f.store.GetStream(ctx, stream.ID)
		if err != nil {
			t.Fatalf("GetStream failed: %v", err)
		}
		if i < f.policy.WindowSize-1 {
			if fetched.Status != streams.StatusRunning {
				t.Fatalf("status must not change before the window fills, got %s after %d samples", fetched.Status, i+1)
			}
		} else if fetched.Status != streams.StatusError {
			t.Fatalf("expected error status once the window filled, got %s", fetched.Status)
		}
	}

	// Degradation leaves timestamps untouched.
	fetched, err := f.store.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.StartedAt == nil || fetched.StoppedAt != nil {
		t.Fatalf("degradation must not alter timestamps: %#v", fetched)
	}
}

func TestLatencyWindowDegradesToError(t *testing.T) {
	f := newFixture(t, testsupport.WithHealthWindow(2), testsupport.WithHealthThresholds(200, 1000, 0.5))
	ctx := context.Background()
	stream := f.runningStream(t, 2000)

	for i := 0; i < 2; i++ {
		if _, err := f.recorder.Record(ctx, stream.ID, health.Measurement{LatencyMS: 1500}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	fetched, err := f.store.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.Status != streams.StatusError {
		t.Fatalf("expected error after sustained latency, got %s", fetched.Status)
	}
}

func TestHealthyWindowDoesNotDegrade(t *testing.T) {
	f := newFixture(t, testsupport.WithHealthWindow(3))
	ctx := context.Background()
	stream := f.runningStream(t, 4000)

	for i := 0; i < 6; i++ {
		if _, err := f.recorder.Record(ctx, stream.ID, health.Measurement{
			BitrateKbps:   3900,
			DroppedFrames: 5,
			LatencyMS:     80,
		}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	fetched, err := f.store.GetStream(ctx, stream.ID)
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if fetched.Status != streams.StatusRunning {
		t.Fatalf("expected running, got %s", fetched.Status)
	}
}

func TestSampleVerdictThresholds(t *testing.T) {
	f := newFixture(t, testsupport.WithHealthWindow(50))
	ctx := context.Background()
	stream := f.runningStream(t, 2000)

	cases := []struct {
		name     string
		m        health.Measurement
		expected streams.Verdict
	}{
		{"clean", health.Measurement{DroppedFrames: 10, LatencyMS: 100}, streams.VerdictHealthy},
		{"dropped frames", health.Measurement{DroppedFrames: 80}, streams.VerdictDegraded},
		{"heavy drops", health.Measurement{DroppedFrames: 300}, streams.VerdictCritical},
		{"high latency", health.Measurement{LatencyMS: 6000}, streams.VerdictCritical},
	}
	for _, tc := range cases {
		sample, err := f.recorder.Record(ctx, stream.ID, tc.m)
		if err != nil {
			t.Fatalf("%s: Record failed: %v", tc.name, err)
		}
		if sample.Verdict != tc.expected {
			t.Fatalf("%s: expected verdict %s, got %s", tc.name, tc.expected, sample.Verdict)
		}
	}
}

func TestMeasurementDefaultsToNominalBitrate(t *testing.T) {
	f := newFixture(t)
	stream := f.runningStream(t, 3500)

	sample, err := f.recorder.Record(context.Background(), stream.ID, health.Measurement{LatencyMS: 40})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if sample.BitrateKbps != 3500 {
		t.Fatalf("expected nominal bitrate fallback, got %d", sample.BitrateKbps)
	}
}
