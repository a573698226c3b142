package provenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"base-resolver/internal/repository"
	"base-resolver/internal/schema"
)

const unbounded = schema.Unbounded

// fld builds a field without provenance.
func fld(path string, min int, max schema.Max) schema.Field {
	return schema.Field{Path: path, Min: min, Max: max}
}

// def builds a definition.
func def(id, ancestor string, fields ...schema.Field) *schema.Definition {
	return &schema.Definition{ID: id, Ancestor: ancestor, Fields: fields}
}

// newRepo registers defs in a fresh in-memory repository.
func newRepo(t *testing.T, defs ...*schema.Definition) *repository.Memory {
	t.Helper()

	repo := repository.NewMemory()
	for _, d := range defs {
		require.NoError(t, repo.Register(d))
	}

	return repo
}

// steppingClock returns a clock that advances one second per call, so a
// descriptor that gets rebuilt always carries a new timestamp.
func steppingClock() func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// field returns the field of d at path.
func field(t *testing.T, d *schema.Definition, path string) *schema.Field {
	t.Helper()

	for i := range d.Fields {
		if d.Fields[i].Path == path {
			return &d.Fields[i]
		}
	}

	t.Fatalf("definition %s has no field %s", d.ID, path)

	return nil
}

// snapshot deep-copies every descriptor of d, keyed by field path.
func snapshot(d *schema.Definition) map[string]*schema.Descriptor {
	out := make(map[string]*schema.Descriptor, len(d.Fields))

	for _, f := range d.Fields {
		if f.Base == nil {
			out[f.Path] = nil
			continue
		}

		cp := *f.Base
		out[f.Path] = &cp
	}

	return out
}

// requireBase asserts the declaration a field's descriptor points at.
func requireBase(t *testing.T, f *schema.Field, path string, min int, max schema.Max) {
	t.Helper()

	require.NotNil(t, f.Base, "field %s has no provenance", f.Path)
	require.Equal(t, path, f.Base.Path, "field %s", f.Path)
	require.Equal(t, min, f.Base.Min, "field %s", f.Path)
	require.Equal(t, max, f.Base.Max, "field %s", f.Path)
	require.Equal(t, schema.OriginGenerated, f.Base.Origin, "field %s", f.Path)
	require.False(t, f.Base.GeneratedAt.IsZero(), "field %s", f.Path)
}
