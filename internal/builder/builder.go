package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/specialistvlad/wfgraph/internal/ctxlog"
	"github.com/specialistvlad/wfgraph/internal/props"
	"github.com/specialistvlad/wfgraph/internal/registry"
	"github.com/specialistvlad/wfgraph/internal/workflow"
)

const (
	startNodePrefix = "start_node_"
	// maxStartNameAttempts bounds suffix regeneration when a document
	// happens to declare the synthesized name.
	maxStartNameAttempts = 16
)

// Builder turns workflow documents into task graphs. A Builder holds no
// per-build state and may be shared between goroutines.
type Builder struct {
	registry  *registry.Registry
	props     *props.PropertySet
	newSuffix func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithStartNameSuffix replaces the random suffix of the synthesized start
// node name, e.g. to make test output stable.
func WithStartNameSuffix(fn func() string) Option {
	return func(b *Builder) {
		b.newSuffix = fn
	}
}

// New creates a builder that resolves action bodies through r and
// substitutes properties from ps.
func New(r *registry.Registry, ps *props.PropertySet, opts ...Option) *Builder {
	if ps == nil {
		ps = props.Empty()
	}
	b := &Builder{
		registry:  r,
		props:     ps,
		newSuffix: randomSuffix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Build compiles doc into wf. On error wf is left partially populated and
// must not be handed on.
func (b *Builder) Build(ctx context.Context, doc *etree.Document, wf *workflow.Workflow) error {
	logger := ctxlog.FromContext(ctx).With("dag", wf.DagName)
	logger.Debug("Build: Starting graph construction.")

	root := doc.Root()
	if root == nil {
		return workflow.Malformedf("", "document has no root element")
	}
	idx, err := indexElements(root)
	if err != nil {
		return err
	}
	startName, err := b.startNodeName(idx)
	if err != nil {
		return err
	}
	logger.Debug("Build: Document indexed.", "declared_nodes", len(idx.byName), "start", startName)

	t := &traversal{
		builder: b,
		wf:      wf,
		idx:     idx,
		logger:  logger,
	}
	if err := t.run(startName); err != nil {
		return err
	}
	logger.Debug("Build: Traversal complete.", "node_count", len(wf.Nodes))

	if err := linkNodes(ctx, wf); err != nil {
		return err
	}
	logger.Debug("Build: Node linking complete.", "relation_count", wf.Relations.Len())

	if err := detectCycles(wf); err != nil {
		return err
	}
	logger.Debug("Build: Cycle detection passed.")

	finish(ctx, wf)
	logger.Debug("Build: Finish pass complete.", "node_count", len(wf.Nodes))

	if err := wf.Validate(); err != nil {
		return fmt.Errorf("validating workflow %q: %w", wf.DagName, err)
	}
	logger.Debug("Build: Graph construction successful.")
	return nil
}

// startNodeName synthesizes a start node name no declared node uses.
func (b *Builder) startNodeName(idx *elementIndex) (string, error) {
	for i := 0; i < maxStartNameAttempts; i++ {
		name := startNodePrefix + b.newSuffix()
		if _, taken := idx.byName[name]; !taken {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not synthesize a unique start node name after %d attempts", maxStartNameAttempts)
}
