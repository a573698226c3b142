package provenance

// DefaultFoundationalTypes are the base types every definition ultimately
// derives from. Their declarations are never used as a normalized origin.
var DefaultFoundationalTypes = []string{
	"Base", "Element", "BackboneElement", "DataType", "BackboneType",
	"PrimitiveType", "Resource", "DomainResource",
}

// Settings controls one Resolver.
type Settings struct {
	// Normalize points descriptors at the ancestor that originally declared
	// a field instead of the nearest one that re-declares it, and recomputes
	// previously generated descriptors.
	Normalize bool
	// TolerateMissingAncestor records unresolvable ancestor ids instead of failing.
	TolerateMissingAncestor bool
	// MaxDepth limits ancestor chain length during expansion and climbing (0 = unlimited).
	MaxDepth int
	// FoundationalTypes are root type names whose declarations are skipped
	// when normalizing.
	FoundationalTypes []string
}

// DefaultSettings returns the default resolver settings.
func DefaultSettings() Settings {
	return Settings{
		Normalize:               false,
		TolerateMissingAncestor: false,
		MaxDepth:                64,
		FoundationalTypes:       DefaultFoundationalTypes,
	}
}
