package provenance

import (
	"time"

	"base-resolver/internal/schema"
)

// Builder creates generated descriptors stamped with its clock.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using now for GeneratedAt; nil means time.Now.
func NewBuilder(now func() time.Time) Builder {
	if now == nil {
		now = time.Now
	}

	return Builder{now: now}
}

// FromField describes the declaration of a itself.
func (b Builder) FromField(a *schema.Field) *schema.Descriptor {
	return b.tag(&schema.Descriptor{Path: a.Path, Min: a.Min, Max: a.Max})
}

// FromDescriptor copies the declaration another descriptor points at.
func (b Builder) FromDescriptor(d *schema.Descriptor) *schema.Descriptor {
	return b.tag(&schema.Descriptor{Path: d.Path, Min: d.Min, Max: d.Max})
}

func (b Builder) tag(d *schema.Descriptor) *schema.Descriptor {
	d.Origin = schema.OriginGenerated
	d.GeneratedAt = b.now().UTC()

	return d
}
