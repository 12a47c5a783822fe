package walk

import (
	"log/slog"
	"sync"
	"time"

	"github.com/chkup/spec-tools/pkg/sel/ast"
	selerrors "github.com/chkup/spec-tools/pkg/sel/errors"
	"github.com/chkup/spec-tools/pkg/sel/form"
	"github.com/chkup/spec-tools/pkg/telemetry/metrics"
)

// Reducer is the caller-supplied fold function. It is invoked exactly
// once per visited node, after all of the node's children have been
// visited, with the node's dispatch key, the original node, the child
// results in declaration order, and the caller's context value. Its
// return value becomes the child result seen by the parent's handler.
type Reducer func(key Key, node ast.Node, children []any, ctx any) (any, error)

// Handler is registered in the dispatch table under one key. A handler
// owns exactly the knowledge of how many structural children its
// combinator has and how to extract them; it visits each child through
// the walker, then invokes the reducer with the collected results.
type Handler func(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error)

// Config contains configuration for a Walker. The zero value walks
// registry-free with the default collaborators.
type Config struct {
	// Resolver turns opaque handles and named references into literal
	// expressions. Default: form.RegistryResolver{} (opens Former
	// handles only).
	Resolver form.Resolver

	// Collections classifies homogeneous-collection nodes.
	// Default: form.HintResolver{}.
	Collections form.CollectionKindResolver

	// Metrics, if set, receives per-node and per-walk observations.
	Metrics *metrics.WalkMetrics

	// Logger for dispatch diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Walker is the open dispatch table driving recursive schema visits.
//
// The table is read concurrently by any number of walks; registering a
// handler is an administrative operation taking exclusive access, so
// registration must not race with in-flight walks the caller cares
// about observing consistently.
type Walker struct {
	mu       sync.RWMutex
	handlers map[ast.QName]Handler
	fallback Handler

	resolver    form.Resolver
	collections form.CollectionKindResolver
	walkMetrics *metrics.WalkMetrics
	logger      *slog.Logger
}

// New creates a walker with the built-in combinator handlers
// registered. A nil config uses the default collaborators.
func New(cfg *Config) *Walker {
	if cfg == nil {
		cfg = &Config{}
	}

	w := &Walker{
		handlers:    make(map[ast.QName]Handler),
		fallback:    DefaultHandler,
		resolver:    cfg.Resolver,
		collections: cfg.Collections,
		walkMetrics: cfg.Metrics,
		logger:      cfg.Logger,
	}
	if w.resolver == nil {
		w.resolver = form.RegistryResolver{}
	}
	if w.collections == nil {
		w.collections = form.HintResolver{}
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	registerBuiltins(w)
	return w
}

// Register adds or replaces the handler for a dispatch key name. It
// takes exclusive access to the table; see the Walker doc for the
// concurrency contract.
func (w *Walker) Register(name ast.QName, h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[name] = h
}

// SetDefault replaces the fallback handler invoked for keys with no
// registered handler and for opaque nodes. Passing nil restores
// DefaultHandler, so the built-in fallback is always reachable.
func (w *Walker) SetDefault(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if h == nil {
		h = DefaultHandler
	}
	w.fallback = h
}

// Visit classifies node, dispatches to the registered handler (or the
// fallback), and returns the reducer's result for the node. Handlers
// recurse into structural children through this same entry point, so
// the reducer runs bottom-up, exactly once per node.
func (w *Walker) Visit(node ast.Node, accept Reducer, ctx any) (any, error) {
	key := w.DispatchKey(node)
	return w.handlerFor(key)(w, key, node, accept, ctx)
}

// Walk is Visit plus whole-walk instrumentation: one duration/outcome
// observation for the entire tree. Prefer it at the root of a walk
// when the walker carries metrics.
func (w *Walker) Walk(node ast.Node, accept Reducer, ctx any) (any, error) {
	if w.walkMetrics == nil {
		return w.Visit(node, accept, ctx)
	}

	start := time.Now()
	result, err := w.Visit(node, accept, ctx)
	w.walkMetrics.ObserveWalk(time.Since(start), err)
	return result, err
}

// DispatchKey computes the dispatch key for a schema node. The layered
// resolution is what lets five structurally different representations
// of "a schema" converge onto one flat key space:
//
//  1. Named references and handles resolve through the form resolver;
//     an unknown form makes the node its own (opaque) key.
//  2. A resolved form is classified again by the same rules.
//  3. Raw sets take the enumeration sentinel.
//  4. Literal expressions are unwrapped one level, then keyed by their
//     canonicalized head.
//  5. Bare names are canonicalized directly.
//  6. Anything else resolves through the form resolver or falls back
//     to identity.
func (w *Walker) DispatchKey(node ast.Node) Key {
	switch n := node.(type) {
	case *ast.Named, *ast.Handle:
		resolved, ok := w.resolver.ResolveForm(n)
		if !ok {
			return OpaqueKey(node)
		}
		return w.DispatchKey(resolved)

	case *ast.Enumeration:
		return Key{Name: NameEnum}

	case *ast.Application:
		app, ok := form.StripWrapper(n).(*ast.Application)
		if !ok {
			return OpaqueKey(node)
		}
		return KeyFor(form.Canonicalize(app.Head))

	case *ast.Symbol:
		return KeyFor(form.Canonicalize(n.Name))

	default:
		if resolved, ok := w.resolver.ResolveForm(node); ok {
			return w.DispatchKey(resolved)
		}
		return OpaqueKey(node)
	}
}

// Form resolves a node to its literal application form, stripping one
// wrapper level. Handlers call it after classification has already
// proven the node form-shaped, so failure here is a precondition
// violation, not a data error.
func (w *Walker) Form(node ast.Node) (*ast.Application, error) {
	cur := node
	for {
		if app, ok := form.StripWrapper(cur).(*ast.Application); ok {
			return app, nil
		}
		resolved, ok := w.resolver.ResolveForm(cur)
		if !ok {
			return nil, selerrors.Internal("node %T has no application form", node)
		}
		cur = resolved
	}
}

// EnumForm resolves a node to its enumeration form. Same precondition
// contract as Form.
func (w *Walker) EnumForm(node ast.Node) (*ast.Enumeration, error) {
	cur := node
	for {
		if enum, ok := cur.(*ast.Enumeration); ok {
			return enum, nil
		}
		resolved, ok := w.resolver.ResolveForm(cur)
		if !ok {
			return nil, selerrors.Internal("node %T has no enumeration form", node)
		}
		cur = resolved
	}
}

// CollectionKind asks the collection-kind resolver to classify a
// homogeneous-collection expression.
func (w *Walker) CollectionKind(app *ast.Application) form.CollectionKind {
	return w.collections.ResolveCollectionKind(app)
}

// ReduceChildren visits each child in order and invokes the reducer
// with the collected results. Handlers, built-in and extension alike,
// delegate here once they have extracted their children.
//
// The per-node visit metric is recorded here, with the key the reducer
// observes, so a refined collection kind is counted under its refined
// name. Extension handlers that invoke the reducer without delegating
// here are not counted.
func (w *Walker) ReduceChildren(key Key, node ast.Node, children []ast.Node, accept Reducer, ctx any) (any, error) {
	results := make([]any, 0, len(children))
	for _, child := range children {
		r, err := w.Visit(child, accept, ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if w.walkMetrics != nil {
		w.walkMetrics.NodeVisited(key.String())
	}
	return accept(key, node, results, ctx)
}

// handlerFor looks up the handler for a key under shared access.
// Lookup is total: opaque and unregistered keys take the fallback, so
// dispatch is never partial.
func (w *Walker) handlerFor(key Key) Handler {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !key.IsOpaque() {
		if h, ok := w.handlers[key.Name]; ok {
			return h
		}
		w.logger.Debug("no handler registered for dispatch key, using default",
			"key", key.String(),
		)
	}
	return w.fallback
}
