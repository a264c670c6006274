package pathutil

import "strings"

// PathBuilder accumulates URL path segments with push/pop semantics.
// Each pushed marker may itself contain several slash-separated segments;
// Pop removes exactly what the matching Push added.
type PathBuilder struct {
	segments []string
	marks    []int
	length   int
}

// Push appends the segments of a path marker. Empty markers push nothing
// but still record a mark so that Push and Pop stay balanced.
func (p *PathBuilder) Push(marker string) {
	p.marks = append(p.marks, len(p.segments))
	for _, seg := range strings.Split(marker, "/") {
		if seg == "" {
			continue
		}
		p.segments = append(p.segments, seg)
		p.length += len(seg) + 1
	}
}

// Pop removes the segments added by the last Push.
func (p *PathBuilder) Pop() {
	if len(p.marks) == 0 {
		return
	}
	mark := p.marks[len(p.marks)-1]
	p.marks = p.marks[:len(p.marks)-1]
	for _, seg := range p.segments[mark:] {
		p.length -= len(seg) + 1
	}
	p.segments = p.segments[:mark]
}

// Depth returns the number of balanced Push calls outstanding.
func (p *PathBuilder) Depth() int {
	return len(p.marks)
}

// Segments returns a copy of the current segments.
func (p *PathBuilder) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.marks = p.marks[:0]
	p.length = 0
}

// String materializes the template. The root template is "/".
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
