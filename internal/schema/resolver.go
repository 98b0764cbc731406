package schema

import (
	"fmt"

	ustrings "github.com/blueprint-lang/blueprint/internal/util/strings"
)

// PairKey is a normalized unordered module-name pair. Left is always the
// lexicographically smaller name so lookups are independent of declaration
// order.
type PairKey struct {
	Left  string
	Right string
}

// NewPairKey builds the normalized key for two module names.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Left: a, Right: b}
}

// Edge is one directed relation in the resolved graph.
type Edge struct {
	From     string
	To       string
	Relation *Relation
}

// Inferred reports whether this edge was synthesized by the resolver rather
// than authored in the blueprint.
func (e *Edge) Inferred() bool {
	return e.Relation.Inferred
}

// RelationGraph is the pair-keyed collection of all directed relations across
// a blueprint's modules, authored and inferred.
type RelationGraph struct {
	pairs map[PairKey][]*Edge
	order []PairKey
}

func newRelationGraph() *RelationGraph {
	return &RelationGraph{pairs: make(map[PairKey][]*Edge)}
}

func (g *RelationGraph) add(e *Edge) {
	key := NewPairKey(e.From, e.To)
	if _, seen := g.pairs[key]; !seen {
		g.order = append(g.order, key)
	}
	g.pairs[key] = append(g.pairs[key], e)
}

// Pairs returns pair keys in first-declared order.
func (g *RelationGraph) Pairs() []PairKey {
	return g.order
}

// Edges returns the directed edges recorded for a pair.
func (g *RelationGraph) Edges(key PairKey) []*Edge {
	return g.pairs[key]
}

// OutgoingFrom returns every edge whose source is the given module, in
// pair-declaration order.
func (g *RelationGraph) OutgoingFrom(module string) []*Edge {
	var out []*Edge
	for _, key := range g.order {
		for _, e := range g.pairs[key] {
			if e.From == module {
				out = append(out, e)
			}
		}
	}
	return out
}

// Len returns the total number of directed edges.
func (g *RelationGraph) Len() int {
	n := 0
	for _, edges := range g.pairs {
		n += len(edges)
	}
	return n
}

// Resolve validates every relation declared by the given modules and infers
// missing inverse metadata. Inferred relations are appended to their owning
// module with the Inferred flag set, so the blueprint the renderer receives
// matches the returned graph. Any dangling reference, conflicting kind pair,
// or duplicate edge is terminal; no partial graph is returned.
func Resolve(modules []*Module) (*RelationGraph, error) {
	byName := make(map[string]*Module, len(modules))
	for _, m := range modules {
		if _, exists := byName[m.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name)
		}
		byName[m.Name] = m
	}

	// Collect authored edges in declaration order, failing on the first
	// dangling target.
	var authored []*Edge
	pairEdges := make(map[PairKey][]*Edge)
	var pairOrder []PairKey
	for _, m := range modules {
		for _, rel := range m.Relations {
			if _, ok := byName[rel.TargetModule]; !ok {
				declared := make([]string, 0, len(modules))
				for _, mod := range modules {
					declared = append(declared, mod.Name)
				}
				return nil, &UnknownEntityReferenceError{
					Module:    m.Name,
					Field:     rel.Field,
					Reference: rel.TargetModule,
					Declared:  declared,
				}
			}
			edge := &Edge{From: m.Name, To: rel.TargetModule, Relation: rel}
			authored = append(authored, edge)
			key := NewPairKey(edge.From, edge.To)
			if _, seen := pairEdges[key]; !seen {
				pairOrder = append(pairOrder, key)
			}
			pairEdges[key] = append(pairEdges[key], edge)
		}
	}

	graph := newRelationGraph()
	for _, key := range pairOrder {
		edges := pairEdges[key]

		if err := checkDuplicates(edges); err != nil {
			return nil, err
		}

		matched := matchInversePairs(edges)
		for _, pair := range matched {
			fwd, rev := pair[0], pair[1]
			if rev.Relation.Kind != fwd.Relation.Kind.Inverse() {
				return nil, &RelationConflictError{
					ModuleA: fwd.From,
					ModuleB: rev.From,
					KindA:   fwd.Relation.Kind,
					KindB:   rev.Relation.Kind,
					FieldA:  fwd.Relation.Field,
					FieldB:  rev.Relation.Field,
				}
			}
			if fwd.Relation.InverseField == "" {
				fwd.Relation.InverseField = rev.Relation.Field
			}
			if rev.Relation.InverseField == "" {
				rev.Relation.InverseField = fwd.Relation.Field
			}
		}

		for _, e := range edges {
			graph.add(e)
			if isMatched(e, matched) {
				continue
			}
			inv := synthesizeInverse(e, byName[e.To])
			byName[e.To].Relations = append(byName[e.To].Relations, inv)
			graph.add(&Edge{From: e.To, To: e.From, Relation: inv})
		}
	}

	return graph, nil
}

// checkDuplicates rejects two edges in the same direction with the same field
// name. Multiple edges between a pair are legal only when field names differ.
func checkDuplicates(edges []*Edge) error {
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			a, b := edges[i], edges[j]
			if a.From == b.From && a.Relation.Field == b.Relation.Field {
				return &RelationConflictError{
					ModuleA: a.From,
					ModuleB: a.To,
					KindA:   a.Relation.Kind,
					KindB:   b.Relation.Kind,
					FieldA:  a.Relation.Field,
					FieldB:  b.Relation.Field,
				}
			}
		}
	}
	return nil
}

// matchInversePairs pairs forward and reverse authored edges between the same
// module pair. Explicit inverseField linkage wins; otherwise a lone edge in
// each direction is paired. Self-referential pairs match by linkage, or by
// mutually inverse kinds when exactly two edges are declared.
func matchInversePairs(edges []*Edge) [][2]*Edge {
	var matched [][2]*Edge
	used := make(map[*Edge]bool)

	selfLoop := len(edges) > 0 && edges[0].From == edges[0].To

	// Pass 1: explicit linkage
	for _, a := range edges {
		if used[a] {
			continue
		}
		for _, b := range edges {
			if b == a || used[b] {
				continue
			}
			if !selfLoop && a.From == b.From {
				continue
			}
			if a.Relation.InverseField != "" && a.Relation.InverseField == b.Relation.Field ||
				b.Relation.InverseField != "" && b.Relation.InverseField == a.Relation.Field {
				matched = append(matched, [2]*Edge{a, b})
				used[a], used[b] = true, true
				break
			}
		}
	}

	// Pass 2: unambiguous single edges
	if selfLoop {
		var free []*Edge
		for _, e := range edges {
			if !used[e] {
				free = append(free, e)
			}
		}
		// Only asymmetric kinds pair without linkage; two symmetric
		// self-relations (say, spouse and bestFriend) stay independent.
		if len(free) == 2 &&
			free[1].Relation.Kind == free[0].Relation.Kind.Inverse() &&
			free[0].Relation.Kind != free[1].Relation.Kind {
			matched = append(matched, [2]*Edge{free[0], free[1]})
			used[free[0]], used[free[1]] = true, true
		}
	} else {
		var fwd, rev []*Edge
		for _, e := range edges {
			if used[e] {
				continue
			}
			if e.From == edges[0].From {
				fwd = append(fwd, e)
			} else {
				rev = append(rev, e)
			}
		}
		if len(fwd) == 1 && len(rev) == 1 {
			matched = append(matched, [2]*Edge{fwd[0], rev[0]})
			used[fwd[0]], used[rev[0]] = true, true
		}
	}

	return matched
}

func isMatched(e *Edge, matched [][2]*Edge) bool {
	for _, pair := range matched {
		if pair[0] == e || pair[1] == e {
			return true
		}
	}
	return false
}

// synthesizeInverse builds the derived reverse relation for an authored edge
// with no explicit counterpart. The inverse field name is derived from the
// source module name; on a naming collision (including a self-relation whose
// derived name equals the originating field) it is left empty.
func synthesizeInverse(e *Edge, target *Module) *Relation {
	invKind := e.Relation.Kind.Inverse()
	field := deriveInverseField(e.From, invKind, target, e.Relation.Field)
	inv := &Relation{
		Kind:         invKind,
		TargetModule: e.From,
		Field:        field,
		InverseField: e.Relation.Field,
		OnDelete:     e.Relation.OnDelete,
		Inferred:     true,
	}
	if field != "" && e.Relation.InverseField == "" {
		e.Relation.InverseField = field
	}
	return inv
}

// deriveInverseField derives a camelCase property name for an inferred
// relation: singular for to-one inverses, pluralized for to-many.
func deriveInverseField(sourceModule string, invKind RelationKind, target *Module, originating string) string {
	name := ustrings.LowerFirst(sourceModule)
	if invKind == OneToMany || invKind == ManyToMany {
		name = ustrings.Pluralize(name)
	}
	if name == originating {
		return ""
	}
	for _, f := range target.Fields {
		if f.Name == name {
			return ""
		}
	}
	for _, r := range target.Relations {
		if r.Field == name {
			return ""
		}
	}
	return name
}
