package provenance

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"base-resolver/internal/common"
	"base-resolver/internal/diagnostic"
	"base-resolver/internal/fieldtree"
	"base-resolver/internal/match"
	"base-resolver/internal/repository"
	"base-resolver/internal/schema"
)

// Resolver assigns provenance descriptors to the fields of definitions.
type Resolver struct {
	repo     repository.Repository
	settings Settings
	expander Expander
	matcher  *match.Matcher
	builder  Builder
	logger   *zap.Logger

	invalid      *InvalidAncestors
	diags        diagnostic.Diagnostics
	foundational map[string]struct{}
}

// NewResolver creates a Resolver reading ancestors from repo.
// Unless WithExpander is given, ancestors are expanded by a MemoExpander
// that runs this resolver on each ancestor once.
func NewResolver(repo repository.Repository, settings Settings, opts ...Option) *Resolver {
	r := &Resolver{
		repo:         repo,
		settings:     settings,
		matcher:      match.NewMatcher(),
		builder:      NewBuilder(nil),
		logger:       zap.NewNop(),
		invalid:      NewInvalidAncestors(),
		foundational: make(map[string]struct{}, len(settings.FoundationalTypes)),
	}

	for _, t := range settings.FoundationalTypes {
		r.foundational[t] = struct{}{}
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.expander == nil {
		r.expander = NewMemoExpander(r.expandDefinition, settings.MaxDepth, r.logger)
	}

	return r
}

// Settings returns the settings the resolver was created with.
func (r *Resolver) Settings() Settings {
	return r.settings
}

// InvalidAncestors returns the ids recorded in tolerant mode.
func (r *Resolver) InvalidAncestors() *InvalidAncestors {
	return r.invalid
}

// Diagnostics returns the findings collected so far.
func (r *Resolver) Diagnostics() *diagnostic.Diagnostics {
	return &r.diags
}

// ResolveProvenance assigns descriptors to fields, a field list whose
// immediate ancestor is ancestorID. It mutates Field.Base in place.
// An empty list or an empty ancestorID is a no-op.
func (r *Resolver) ResolveProvenance(fields []schema.Field, ancestorID string) error {
	return r.resolve("", fields, ancestorID)
}

// ResolveDefinition resolves def through the expander, so each definition
// is processed at most once per Resolver.
func (r *Resolver) ResolveDefinition(def *schema.Definition) error {
	if def == nil {
		return errors.New("definition is nil")
	}

	return r.expander.EnsureExpanded(def)
}

// ResolveAll resolves the given definitions, or every definition of the
// repository when ids is empty. Failures don't stop the remaining ids; they
// are joined into the returned error and recorded as diagnostics.
func (r *Resolver) ResolveAll(ids ...string) error {
	if len(ids) == 0 {
		lister, ok := r.repo.(repository.Lister)
		if !ok {
			return errors.New("repository cannot list definitions; pass ids explicitly")
		}

		ids = lister.IDs()
	}

	var errs []error

	for _, id := range ids {
		def, ok := r.repo.Resolve(id)
		if !ok {
			r.diags.AddError("definition_missing", "definition not found", id, "")
			errs = append(errs, fmt.Errorf("definition %q not found", id))

			continue
		}

		if err := r.ResolveDefinition(def); err != nil {
			r.diags.AddError("resolve_failed", err.Error(), id, "")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (r *Resolver) expandDefinition(def *schema.Definition) error {
	return r.resolve(def.ID, def.Fields, def.Ancestor)
}

func (r *Resolver) resolve(owner string, fields []schema.Field, ancestorID string) error {
	if common.IsEmpty(fields) || ancestorID == "" {
		return nil
	}

	cur := fieldtree.New(fields)

	ancestor, err := r.lookup(owner, cur.Path(), ancestorID)
	if err != nil || ancestor == nil {
		return err
	}

	base := fieldtree.New(ancestor.Fields)
	if !base.Valid() {
		return nil
	}

	w := &walk{r: r, owner: owner}
	w.assign(cur.Field(), base.Field(), true)

	return w.descend(cur, base, ancestor)
}

// lookup resolves and expands an ancestor. It returns nil and no error
// when the ancestor is missing and that is tolerated.
func (r *Resolver) lookup(owner, path, id string) (*schema.Definition, error) {
	def, ok := r.repo.Resolve(id)
	if !ok {
		if !r.settings.TolerateMissingAncestor {
			return nil, &UnresolvedAncestorError{Path: path, AncestorID: id, Suggestions: r.suggest(id)}
		}

		if _, seen := r.invalid.Status(id); !seen {
			r.diags.AddWarning("ancestor_missing", fmt.Sprintf("ancestor %q not found", id), owner, path, r.suggest(id)...)
		}

		r.invalid.Record(id, StatusMissing)
		r.logger.Warn("ancestor not found",
			zap.String("definition", owner),
			zap.String("path", path),
			zap.String("ancestor", id))

		return nil, nil
	}

	if err := r.expander.EnsureExpanded(def); err != nil {
		if r.settings.TolerateMissingAncestor && errors.Is(err, ErrCyclicAncestry) {
			r.invalid.Record(id, StatusCyclic)
		}

		return nil, err
	}

	return def, nil
}

func (r *Resolver) suggest(id string) []string {
	if lister, ok := r.repo.(repository.Lister); ok {
		return match.Suggest(id, lister.IDs())
	}

	return nil
}

func (r *Resolver) isFoundational(path string) bool {
	_, ok := r.foundational[schema.RootName(path)]
	return ok
}

// walk aligns the fields of one definition. owner is the definition id,
// empty when the caller passed a bare field list.
type walk struct {
	r     *Resolver
	owner string
}

// descend aligns the children of cur against the children of base in
// lockstep. donor is the definition base belongs to. Both cursors are back
// at their starting positions on return.
func (w *walk) descend(cur, base *fieldtree.Cursor, donor *schema.Definition) error {
	if !cur.HasChildren() {
		return nil
	}

	curMark, baseMark := cur.Bookmark(), base.Bookmark()
	defer func() {
		cur.Restore(curMark)
		base.Restore(baseMark)
	}()

	cur.MoveToFirstChild()
	baseLive := base.MoveToFirstChild()

	for {
		if baseLive && w.seek(cur.Name(), base) {
			w.assign(cur.Field(), base.Field(), false)

			if err := w.descend(cur, base, donor); err != nil {
				return err
			}

			// the matched ancestor field is consumed
			baseLive = base.MoveToNextSibling()
		} else if err := w.climb(cur, donor); err != nil {
			return err
		}

		if !cur.MoveToNextSibling() {
			return nil
		}
	}
}

// seek moves base forward over its remaining siblings to the first one
// matching name. Ancestor fields the derived list skipped are passed over;
// base doesn't move when nothing matches.
func (w *walk) seek(name string, base *fieldtree.Cursor) bool {
	mark := base.Bookmark()

	for {
		if w.r.matcher.SameField(base.Name(), name) {
			return true
		}

		if !base.MoveToNextSibling() {
			base.Restore(mark)
			return false
		}
	}
}

// climb looks for the current field in the ancestors of donor, nearest
// first, and aligns its subtree against the first ancestor declaring it.
func (w *walk) climb(cur *fieldtree.Cursor, donor *schema.Definition) error {
	r := w.r
	visited := []string{donor.ID}

	for id := donor.Ancestor; id != ""; {
		if i := slices.Index(visited, id); i >= 0 {
			return &CyclicAncestryError{Chain: append(slices.Clone(visited[i:]), id)}
		}

		if r.settings.MaxDepth > 0 && len(visited) > r.settings.MaxDepth {
			return fmt.Errorf("%w: climbing from %s for %s", ErrDepthExceeded, donor.ID, cur.Path())
		}

		visited = append(visited, id)

		r.logger.Debug("climbing ancestor chain",
			zap.String("definition", w.owner),
			zap.String("path", cur.Path()),
			zap.String("ancestor", id))

		ancestor, err := r.lookup(w.owner, cur.Path(), id)
		if err != nil {
			return err
		}

		if ancestor == nil {
			return nil
		}

		base := fieldtree.New(ancestor.Fields)
		if w.locate(base, cur.Path()) {
			w.assign(cur.Field(), base.Field(), false)
			return w.descend(cur, base, ancestor)
		}

		id = ancestor.Ancestor
	}

	r.diags.AddInfo("no_provenance", "no ancestor declares this field", w.owner, cur.Path())

	return nil
}

// locate moves base from the root down to the counterpart of path,
// matching each segment below the root by name or choice rename.
func (w *walk) locate(base *fieldtree.Cursor, path string) bool {
	if !base.Valid() {
		return false
	}

	for _, seg := range schema.Segments(path)[1:] {
		found := base.MoveToChild(func(name string) bool {
			return w.r.matcher.SameField(name, seg)
		})
		if !found {
			return false
		}
	}

	return true
}

// assign sets f.Base from its matched ancestor field a.
func (w *walk) assign(f, a *schema.Field, root bool) {
	r := w.r

	if !root && f.Base != nil && (!f.Base.IsGenerated() || !r.settings.Normalize) {
		return
	}

	var d *schema.Descriptor

	switch {
	case root || !r.settings.Normalize:
		d = r.builder.FromField(a)
	case a.Base != nil:
		d = r.builder.FromDescriptor(a.Base)
	case !r.isFoundational(a.Path):
		d = r.builder.FromField(a)
	default:
		return
	}

	if d.SameAs(f.Base) {
		return
	}

	f.Base = d

	r.logger.Debug("assigned provenance",
		zap.String("definition", w.owner),
		zap.String("path", f.Path),
		zap.String("base", d.Path))
}
