package playlist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate_Empty(t *testing.T) {
	out := New("p.m3u8").Generate()

	// Header plus one separator per group
	expected := "#EXTM3U\n\n\n\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestGenerate_IndependentSegments(t *testing.T) {
	pl := New("p.m3u8")
	pl.IndependentSegments = true

	out := pl.Generate()
	if !strings.HasPrefix(out, "#EXTM3U\n#EXT-X-INDEPENDENT-SEGMENTS\n\n") {
		t.Errorf("Expected independent segments flag followed by blank line, got %q", out)
	}
}

func TestGenerate_DefaultOrder(t *testing.T) {
	pl := New("p.m3u8")
	pl.Append(IFrameStreamInf, record("BANDWIDTH", "188232", "URI", "v8/iframe.m3u8"))
	pl.Append(StreamInf, record("BANDWIDTH", "2177116", "CODECS", "avc1.640020,mp4a.40.2", "URI", "v5/prog_index.m3u8"))
	pl.Append(StreamInf, record("BANDWIDTH", "8001098"))
	pl.Append(Media, record("TYPE", "AUDIO", "GROUP-ID", "aud1"))

	expected := `#EXTM3U
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=aud1

#EXT-X-STREAM-INF:BANDWIDTH=2177116,CODECS=avc1.640020,mp4a.40.2
v5/prog_index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=8001098

#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=188232,URI=v8/iframe.m3u8

`
	out := pl.Generate()
	if out != expected {
		t.Errorf("Unexpected output.\nExpected:\n%s\nGot:\n%s", expected, out)
	}
}

func TestGenerate_FollowsEmissionOrder(t *testing.T) {
	pl := New("p.m3u8")
	pl.Append(Media, record("TYPE", "AUDIO"))
	pl.Append(StreamInf, record("BANDWIDTH", "2", "CODECS", "b", "URI", "two.m3u8"))
	pl.Append(StreamInf, record("BANDWIDTH", "1", "CODECS", "a", "URI", "one.m3u8"))

	pl.Sort("CODECS")

	out := pl.Generate()
	streamAt := strings.Index(out, "#EXT-X-STREAM-INF")
	mediaAt := strings.Index(out, "#EXT-X-MEDIA")
	if streamAt < 0 || mediaAt < 0 || streamAt > mediaAt {
		t.Errorf("Expected stream group before media group, got:\n%s", out)
	}

	oneAt := strings.Index(out, "one.m3u8")
	twoAt := strings.Index(out, "two.m3u8")
	if oneAt > twoAt {
		t.Errorf("Expected CODECS=a entry first, got:\n%s", out)
	}
}

func TestGenerate_URIOnlySplitForStreamRecords(t *testing.T) {
	pl := New("p.m3u8")
	pl.Append(Media, record("TYPE", "AUDIO", "URI", "audio.m3u8"))

	out := pl.Generate()
	if !strings.Contains(out, "#EXT-X-MEDIA:TYPE=AUDIO,URI=audio.m3u8\n") {
		t.Errorf("Expected media URI to stay an attribute, got:\n%s", out)
	}
}

func TestGenerate_URINotLastStaysAttribute(t *testing.T) {
	pl := New("p.m3u8")
	pl.Append(StreamInf, record("URI", "x.m3u8", "BANDWIDTH", "1"))

	out := pl.Generate()
	if !strings.Contains(out, "#EXT-X-STREAM-INF:URI=x.m3u8,BANDWIDTH=1\n") {
		t.Errorf("Expected URI attribute kept inline, got:\n%s", out)
	}
}

func TestWriteTo(t *testing.T) {
	pl := New("p.m3u8")
	pl.Append(StreamInf, record("BANDWIDTH", "1", "URI", "low.m3u8"))

	var buf bytes.Buffer
	n, err := pl.WriteTo(&buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Expected %d bytes reported, got %d", buf.Len(), n)
	}
	if buf.String() != pl.Generate() {
		t.Errorf("Expected WriteTo to match Generate")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sorted.m3u8")

	pl := New("p.m3u8")
	pl.Append(StreamInf, record("BANDWIDTH", "1", "URI", "low.m3u8"))

	if err := pl.WriteFile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != pl.Generate() {
		t.Errorf("Expected file content to match Generate, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the destination file, found %d entries", len(entries))
	}
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sorted.m3u8")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	pl := New("p.m3u8")
	if err := pl.WriteFile(path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != pl.Generate() {
		t.Errorf("Expected stale content replaced, got %q", data)
	}
}

func TestWriteFile_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "sorted.m3u8")

	err := New("p.m3u8").WriteFile(path)
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}

	var unwritable *UnwritableDestinationError
	if !errors.As(err, &unwritable) {
		t.Fatalf("Expected UnwritableDestinationError, got %T", err)
	}
	if unwritable.Path != path {
		t.Errorf("Expected path %s, got %s", path, unwritable.Path)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Expected no destination file to be created")
	}
}

func TestWriteFile_DestinationIsDirectory(t *testing.T) {
	dir := t.TempDir()

	err := New("p.m3u8").WriteFile(dir)

	var unwritable *UnwritableDestinationError
	if !errors.As(err, &unwritable) {
		t.Fatalf("Expected UnwritableDestinationError, got %T: %v", err, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected temp file cleaned up, found %d entries", len(entries))
	}
}
