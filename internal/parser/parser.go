// Package parser provides HLS master playlist parsing functionality.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agleyzer/hlssort/internal/playlist"
)

const (
	tagHeader              = "#EXTM3U"
	tagIndependentSegments = "#EXT-X-INDEPENDENT-SEGMENTS"
	tagMedia               = "#EXT-X-MEDIA:"
	tagStreamInf           = "#EXT-X-STREAM-INF:"
	tagIFrameStreamInf     = "#EXT-X-I-FRAME-STREAM-INF:"

	maxLineLength = 1024 * 1024
)

// UnreadableSourceError reports that the source playlist could not be opened
// or read.
type UnreadableSourceError struct {
	Path string
	Err  error
}

func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("unreadable source %q: %v", e.Path, e.Err)
}

func (e *UnreadableSourceError) Unwrap() error {
	return e.Err
}

// ParseFile opens and parses the playlist stored at path.
func ParseFile(path string) (*playlist.Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableSourceError{Path: path, Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads a master playlist from r. The first malformed tag aborts the
// whole parse.
func Parse(r io.Reader, sourcePath string) (*playlist.Playlist, error) {
	// Read all lines up front so a stream tag can look at its URI line
	lines, err := readLines(r)
	if err != nil {
		return nil, &UnreadableSourceError{Path: sourcePath, Err: err}
	}

	pl := playlist.New(sourcePath)

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, tagHeader):
			// Header marker, not validated
		case strings.HasPrefix(line, tagIndependentSegments):
			pl.IndependentSegments = true
		case strings.HasPrefix(line, tagMedia):
			// Rendition
			attrs, err := tokenizeLine(line[len(tagMedia):], i+1)
			if err != nil {
				return nil, err
			}
			pl.Append(playlist.Media, attrs)
		case strings.HasPrefix(line, tagStreamInf):
			attrs, err := tokenizeLine(line[len(tagStreamInf):], i+1)
			if err != nil {
				return nil, err
			}
			// Variant URI follows on the next line
			if i+1 < len(lines) {
				if uri := strings.TrimSpace(lines[i+1]); uri != "" && !strings.HasPrefix(uri, "#") {
					attrs = append(attrs, playlist.Pair{Key: playlist.URIKey, Value: uri})
				}
			}
			pl.Append(playlist.StreamInf, attrs)
		case strings.HasPrefix(line, tagIFrameStreamInf):
			// I-frame variants carry their URI as an attribute
			attrs, err := tokenizeLine(line[len(tagIFrameStreamInf):], i+1)
			if err != nil {
				return nil, err
			}
			pl.Append(playlist.IFrameStreamInf, attrs)
		}
	}

	return pl, nil
}

// tokenizeLine tokenizes a tag body and stamps errors with the line number.
func tokenizeLine(attrs string, lineNo int) (playlist.AttributeList, error) {
	list, err := Tokenize(attrs)
	if err != nil {
		var malformed *MalformedAttributeError
		if errors.As(err, &malformed) {
			malformed.Line = lineNo
		}
		return nil, err
	}
	return list, nil
}

// readLines returns every line of r with \n or \r\n terminators removed.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}
	return lines, nil
}
