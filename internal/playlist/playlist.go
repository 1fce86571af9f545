// Package playlist models an HLS master playlist as grouped tag records and
// implements attribute-aware sorting and serialization.
package playlist

import "fmt"

// Category identifies the tag group a record belongs to.
type Category int

const (
	// Media holds #EXT-X-MEDIA records.
	Media Category = iota
	// StreamInf holds #EXT-X-STREAM-INF records.
	StreamInf
	// IFrameStreamInf holds #EXT-X-I-FRAME-STREAM-INF records.
	IFrameStreamInf
)

// Categories lists every category in the fixed default emission order.
var Categories = []Category{Media, StreamInf, IFrameStreamInf}

// URIKey is the key of the synthetic pair carrying a stream record's URI line.
const URIKey = "URI"

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Media:
		return "media"
	case StreamInf:
		return "streamInf"
	case IFrameStreamInf:
		return "iframeStreamInf"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Tag returns the playlist tag prefix (without colon) written for the category.
func (c Category) Tag() string {
	switch c {
	case Media:
		return "#EXT-X-MEDIA"
	case StreamInf:
		return "#EXT-X-STREAM-INF"
	case IFrameStreamInf:
		return "#EXT-X-I-FRAME-STREAM-INF"
	default:
		return ""
	}
}

// Pair is a single attribute. Value is kept as raw text.
type Pair struct {
	Key   string
	Value string
}

// AttributeList is one parsed tag occurrence, in source order.
type AttributeList []Pair

// Get returns the value paired with key.
func (l AttributeList) Get(key string) (string, bool) {
	for _, p := range l {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether the list contains key.
func (l AttributeList) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// URI returns the synthetic URI pair value when it is the last element.
func (l AttributeList) URI() (string, bool) {
	if len(l) == 0 || l[len(l)-1].Key != URIKey {
		return "", false
	}
	return l[len(l)-1].Value, true
}

// Playlist is the aggregate root populated by a single parse pass.
type Playlist struct {
	// SourcePath is the local file the playlist was parsed from
	SourcePath string

	// IndependentSegments is set when #EXT-X-INDEPENDENT-SEGMENTS was seen
	IndependentSegments bool

	groups [3][]AttributeList
	order  []Category
}

// New creates an empty playlist for the given source path.
func New(sourcePath string) *Playlist {
	return &Playlist{
		SourcePath: sourcePath,
		order:      append([]Category(nil), Categories...),
	}
}

// Append adds a record to the end of the category's group.
func (p *Playlist) Append(c Category, attrs AttributeList) {
	p.groups[c] = append(p.groups[c], attrs)
}

// Records returns the category's records in their current stored order.
func (p *Playlist) Records(c Category) []AttributeList {
	return p.groups[c]
}

// EmissionOrder returns a copy of the order in which groups are serialized.
func (p *Playlist) EmissionOrder() []Category {
	if len(p.order) == 0 {
		return append([]Category(nil), Categories...)
	}
	return append([]Category(nil), p.order...)
}

// Counts returns the number of records per category.
func (p *Playlist) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = len(p.groups[c])
	}
	return counts
}

// Len returns the total number of records across all groups.
func (p *Playlist) Len() int {
	n := 0
	for _, g := range p.groups {
		n += len(g)
	}
	return n
}
