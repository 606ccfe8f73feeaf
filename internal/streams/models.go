package streams

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a stream.
type Status string

const (
	StatusCreated Status = "created"
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
	StatusError   Status = "error"
)

var allStatuses = []Status{
	StatusCreated,
	StatusRunning,
	StatusStopped,
	StatusError,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Protocol identifies the transport a stream is delivered over.
type Protocol string

const (
	ProtocolHLS  Protocol = "hls"
	ProtocolRTMP Protocol = "rtmp"
	ProtocolDASH Protocol = "dash"
	ProtocolSRT  Protocol = "srt"
)

var allProtocols = []Protocol{
	ProtocolHLS,
	ProtocolRTMP,
	ProtocolDASH,
	ProtocolSRT,
}

var protocolSet = func() map[Protocol]struct{} {
	set := make(map[Protocol]struct{}, len(allProtocols))
	for _, protocol := range allProtocols {
		set[protocol] = struct{}{}
	}
	return set
}()

// AllProtocols returns the ordered list of known protocols.
func AllProtocols() []Protocol {
	cp := make([]Protocol, len(allProtocols))
	copy(cp, allProtocols)
	return cp
}

// ParseProtocol converts a string into a known Protocol.
func ParseProtocol(value string) (Protocol, bool) {
	normalized := Protocol(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := protocolSet[normalized]
	return normalized, ok
}

// Stream is one managed media stream persisted in SQLite.
//
// StartedAt and StoppedAt are nil until the corresponding transition has
// happened. When both are set, CreatedAt <= StartedAt <= StoppedAt holds.
type Stream struct {
	ID          string
	Name        string
	SourceURL   string
	TargetURL   string
	Protocol    Protocol
	BitrateKbps int
	Status      Status
	CreatedAt   time.Time
	StartedAt   *time.Time
	StoppedAt   *time.Time
}

// Verdict classifies a single health sample.
type Verdict string

const (
	VerdictHealthy  Verdict = "healthy"
	VerdictDegraded Verdict = "degraded"
	VerdictCritical Verdict = "critical"
)

// Sample is one point-in-time transport quality measurement. Samples are
// append-only; nothing in streamhub mutates or deletes them.
type Sample struct {
	ID            int64
	StreamID      string
	Verdict       Verdict
	BitrateKbps   int
	DroppedFrames int
	LatencyMS     int
	BufferMS      int
	RecordedAt    time.Time
}

// Segment is metadata about one media segment registered by an external
// segmenter. streamhub never touches segment bytes.
type Segment struct {
	ID           int64
	StreamID     string
	Sequence     int64
	URI          string
	DurationSecs float64
	CreatedAt    time.Time
}
