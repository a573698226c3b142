package schema

import (
	"fmt"

	"base-resolver/internal/diagnostic"
)

// Validate checks the structural invariants of a definition's field list.
// It doesn't look at ancestors; unresolved ancestor ids are reported by the
// provenance resolver.
func Validate(def *Definition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if def == nil {
		res.AddError("definition_is_nil", "definition is nil", "", "")
		return res
	}

	if def.ID == "" {
		res.AddError("missing_id", "definition has no id", "", "")
	}

	if def.Ancestor != "" && def.Ancestor == def.ID {
		res.AddError("self_ancestor", "definition names itself as ancestor", def.ID, "")
	}

	if len(def.Fields) == 0 {
		return res
	}

	if !def.Fields[0].IsRoot() {
		res.AddError("root_not_first",
			fmt.Sprintf("first field %q is not a root path", def.Fields[0].Path), def.ID, def.Fields[0].Path)
	}

	seen := make(map[string]struct{}, len(def.Fields))

	for i := range def.Fields {
		f := &def.Fields[i]

		if err := ValidatePath(f.Path); err != nil {
			res.AddError("invalid_path", err.Error(), def.ID, f.Path)
			continue
		}

		if _, dup := seen[f.Path]; dup {
			res.AddError("duplicate_path", fmt.Sprintf("path %q declared more than once", f.Path), def.ID, f.Path)
			continue
		}

		if i > 0 {
			validatePlacement(res, def, f, seen)
		}

		seen[f.Path] = struct{}{}

		validateBounds(res, def.ID, f)
	}

	return res
}

func validatePlacement(res *diagnostic.Diagnostics, def *Definition, f *Field, seen map[string]struct{}) {
	if f.IsRoot() {
		res.AddError("multiple_roots", fmt.Sprintf("root path %q after the first field", f.Path), def.ID, f.Path)
		return
	}

	if RootName(f.Path) != def.Fields[0].Path {
		res.AddError("foreign_root",
			fmt.Sprintf("path %q is not below root %q", f.Path, def.Fields[0].Path), def.ID, f.Path)

		return
	}

	if _, ok := seen[ParentPath(f.Path)]; !ok {
		res.AddError("missing_parent",
			fmt.Sprintf("parent %q must be declared before %q", ParentPath(f.Path), f.Path), def.ID, f.Path)
	}
}

func validateBounds(res *diagnostic.Diagnostics, defID string, f *Field) {
	if f.Min < 0 {
		res.AddError("negative_min", fmt.Sprintf("min %d is negative", f.Min), defID, f.Path)
	}

	if !f.Max.IsUnbounded() && f.Min > int(f.Max) {
		res.AddError("min_exceeds_max", fmt.Sprintf("min %d exceeds max %s", f.Min, f.Max), defID, f.Path)
	}

	if f.Base != nil {
		if err := ValidatePath(f.Base.Path); err != nil {
			res.AddWarning("invalid_base_path", err.Error(), defID, f.Path)
		}
	}
}
