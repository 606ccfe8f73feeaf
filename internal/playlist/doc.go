// Package playlist renders M3U8 master playlists and HLS rendition ladders
// from stream records.
//
// Generation is a pure projection: identical input in identical order yields
// byte-identical output, and nothing here mutates stream state. An empty
// input produces a header-only playlist, which is valid per the format.
package playlist
