// Package verify checks written playlists against an independent HLS decoder.
package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/agleyzer/hlssort/internal/playlist"
	"github.com/grafov/m3u8"
)

// Report summarizes what the reference decoder found.
type Report struct {
	// Variants is the number of regular variant streams decoded
	Variants int

	// IFrameVariants is the number of I-frame variant streams decoded
	IFrameVariants int
}

// File decodes the playlist written at path and checks it against pl.
func File(path string, pl *playlist.Playlist) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Reader(f, pl)
}

// Reader decodes a serialized playlist from r and checks it against pl.
//
// Serialized values are written unquoted, so attributes such as CODECS may not
// decode to their original values; only the variant structure is compared. A
// stream record without a URI line hides the record after it from the
// decoder, so regular variants are only bounded from above.
func Reader(r io.Reader, pl *playlist.Playlist) (*Report, error) {
	wantVariants := len(pl.Records(playlist.StreamInf))
	wantIFrames := len(pl.Records(playlist.IFrameStreamInf))

	if wantVariants+wantIFrames == 0 {
		// Nothing for the decoder to detect a playlist type from
		return &Report{}, nil
	}

	decoded, listType, err := m3u8.DecodeFrom(r, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decode playlist: %w", err)
	}
	if listType != m3u8.MASTER {
		return nil, fmt.Errorf("expected master playlist, got media playlist")
	}

	master, ok := decoded.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, fmt.Errorf("unexpected playlist type")
	}

	report := &Report{}
	for _, v := range master.Variants {
		if v == nil {
			continue
		}
		if v.Iframe {
			report.IFrameVariants++
		} else {
			report.Variants++
		}
	}

	if report.IFrameVariants != wantIFrames {
		return report, fmt.Errorf("decoded %d I-frame variants, expected %d", report.IFrameVariants, wantIFrames)
	}
	if report.Variants > wantVariants {
		return report, fmt.Errorf("decoded %d variants, expected at most %d", report.Variants, wantVariants)
	}

	return report, nil
}
