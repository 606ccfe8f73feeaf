package playlist

import (
	"fmt"
	"strings"

	"streamhub/internal/streams"
)

// DefaultVersion is the #EXT-X-VERSION emitted when the generator is built
// with a version of 0 or less.
const DefaultVersion = 3

// codecs holds the CODECS placeholder emitted per protocol. Real codec
// strings come from the segmenter; these keep the master playlist valid for
// clients that require the attribute.
var codecs = map[streams.Protocol]string{
	streams.ProtocolHLS:  "avc1.640028,mp4a.40.2",
	streams.ProtocolRTMP: "avc1.64001f,mp4a.40.2",
	streams.ProtocolDASH: "avc1.640028,mp4a.40.2",
	streams.ProtocolSRT:  "avc1.640032,mp4a.40.2",
}

// Generator renders master playlists.
type Generator struct {
	version int
}

// NewGenerator returns a Generator emitting the given playlist version.
func NewGenerator(version int) *Generator {
	if version <= 0 {
		version = DefaultVersion
	}
	return &Generator{version: version}
}

// Master converts a slice of streams into an HLS master playlist string. The
// caller filters to running streams; input order is preserved. An empty slice
// produces a header-only playlist.
func (g *Generator) Master(list []*streams.Stream) string {
	var b strings.Builder

	b.WriteString("#EXTM3U\n")
	fmt.Fprintf(&b, "#EXT-X-VERSION:%d\n", g.version)

	for _, stream := range list {
		bandwidth := stream.BitrateKbps * 1000
		fmt.Fprintf(&b, "#EXT-X-STREAM-INF:BANDWIDTH=%d,CODECS=%q,NAME=%q\n",
			bandwidth, codecsFor(stream.Protocol), stream.Name)
		b.WriteString(VariantURI(stream))
		b.WriteString("\n")
	}

	return b.String()
}

// VariantURI derives the per-stream variant playlist reference: the stream's
// target URL when set, otherwise a path derived from its id.
func VariantURI(stream *streams.Stream) string {
	if uri := strings.TrimSpace(stream.TargetURL); uri != "" {
		return uri
	}
	return fmt.Sprintf("/streams/%s/playlist.m3u8", stream.ID)
}

func codecsFor(protocol streams.Protocol) string {
	if c, ok := codecs[protocol]; ok {
		return c
	}
	return codecs[streams.ProtocolHLS]
}
