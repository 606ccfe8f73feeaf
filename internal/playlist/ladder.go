package playlist

import (
	"fmt"

	"streamhub/internal/streams"
)

// Rendition is one rung of an HLS bitrate ladder.
type Rendition struct {
	BitrateKbps int    `json:"bitrate_kbps"`
	Suffix      string `json:"suffix"`
	URI         string `json:"uri"`
}

// HLSConfig describes the HLS output configuration derived for one stream.
type HLSConfig struct {
	StreamID          string      `json:"stream_id"`
	Source            string      `json:"source"`
	Output            string      `json:"output"`
	TargetBitrateKbps int         `json:"target_bitrate_kbps"`
	Variants          []Rendition `json:"variants"`
}

// VariantLadder derives a three-rung rendition ladder (full, half, quarter
// nominal bitrate) for a stream.
func VariantLadder(stream *streams.Stream) HLSConfig {
	output := VariantURI(stream)
	rungs := []struct {
		divisor int
		suffix  string
	}{
		{1, "high"},
		{2, "med"},
		{4, "low"},
	}

	variants := make([]Rendition, 0, len(rungs))
	for _, rung := range rungs {
		variants = append(variants, Rendition{
			BitrateKbps: stream.BitrateKbps / rung.divisor,
			Suffix:      rung.suffix,
			URI:         fmt.Sprintf("/streams/%s/%s/playlist.m3u8", stream.ID, rung.suffix),
		})
	}

	return HLSConfig{
		StreamID:          stream.ID,
		Source:            stream.SourceURL,
		Output:            output,
		TargetBitrateKbps: stream.BitrateKbps,
		Variants:          variants,
	}
}
