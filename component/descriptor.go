package component

import "maps"

// Descriptor describes how one piece of composite state should be treated
// by whoever consumes the aggregate (persistence and anonymity flags).
type Descriptor struct {
	Persisted bool `json:"persisted"`
	Anonymous bool `json:"anonymous"`
}

// DefaultDescriptor returns the synthetic descriptor substituted for
// children that do not publish their own metadata.
func DefaultDescriptor() Descriptor {
	return Descriptor{Persisted: true, Anonymous: true}
}

// Meta is one entry of composite metadata: how a single child's slice of
// the composite state should be treated.
//
// Children that publish their own per-field metadata have it copied
// verbatim into Fields. Children that do not get the synthesized
// DefaultDescriptor in Slice and a nil Fields map.
type Meta struct {
	Fields map[string]Descriptor `json:"fields,omitempty"`
	Slice  Descriptor            `json:"slice"`
}

// Descriptor collapses the entry into a single descriptor describing the
// slice as a whole: the synthesized default for children without their own
// metadata, and a conservative merge otherwise (persisted when any field is
// persisted, anonymous only when every field is).
func (m Meta) Descriptor() Descriptor {
	if m.Fields == nil {
		return m.Slice
	}

	d := Descriptor{Anonymous: true}
	for _, f := range m.Fields {
		d.Persisted = d.Persisted || f.Persisted
		d.Anonymous = d.Anonymous && f.Anonymous
	}
	return d
}

// MetaFor builds the composite metadata entry for a child.
func MetaFor(c Child) Meta {
	if c.Kind == KindModern {
		return Meta{Fields: maps.Clone(c.Metadata)}
	}
	return Meta{Slice: DefaultDescriptor()}
}
