package provenance

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"base-resolver/internal/common"
	"base-resolver/internal/schema"
)

// Expander guarantees that a definition is fully expanded, including its own
// provenance against its own ancestor, before it serves as an ancestor.
// Implementations must be idempotent.
type Expander interface {
	EnsureExpanded(def *schema.Definition) error
}

// ExpandFunc expands one definition; it is called at most once per id.
type ExpandFunc func(def *schema.Definition) error

// MemoExpander runs an ExpandFunc once per definition id and detects cycles
// through the ids currently being expanded on the call stack.
type MemoExpander struct {
	expand   ExpandFunc
	maxDepth int
	logger   *zap.Logger

	done       map[string]struct{}
	inProgress []string
	expansions int
}

var _ Expander = (*MemoExpander)(nil)

// NewMemoExpander wraps expand. maxDepth bounds nested expansions (0 = unlimited).
func NewMemoExpander(expand ExpandFunc, maxDepth int, logger *zap.Logger) *MemoExpander {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MemoExpander{
		expand:   expand,
		maxDepth: maxDepth,
		logger:   logger,
		done:     make(map[string]struct{}),
	}
}

// EnsureExpanded expands def unless it was already expanded.
func (e *MemoExpander) EnsureExpanded(def *schema.Definition) error {
	if _, ok := e.done[def.ID]; ok {
		return nil
	}

	if i := slices.Index(e.inProgress, def.ID); i >= 0 {
		chain := append(slices.Clone(e.inProgress[i:]), def.ID)
		return &CyclicAncestryError{Chain: chain}
	}

	if e.maxDepth > 0 && len(e.inProgress) >= e.maxDepth {
		parent, _ := common.Last(e.inProgress)
		return fmt.Errorf("%w: expanding %s below %s", ErrDepthExceeded, def.ID, parent)
	}

	e.inProgress = append(e.inProgress, def.ID)
	defer func() { e.inProgress = e.inProgress[:len(e.inProgress)-1] }()

	if err := e.expand(def); err != nil {
		return fmt.Errorf("expanding %s: %w", def.ID, err)
	}

	e.done[def.ID] = struct{}{}
	e.expansions++

	e.logger.Debug("expanded definition",
		zap.String("definition", def.ID),
		zap.String("ancestor", def.Ancestor),
		zap.Int("depth", len(e.inProgress)))

	return nil
}

// IsExpanded reports whether id was expanded successfully.
func (e *MemoExpander) IsExpanded(id string) bool {
	_, ok := e.done[id]
	return ok
}

// Expansions returns how many definitions were expanded.
func (e *MemoExpander) Expansions() int {
	return e.expansions
}
