package path

import (
	"strings"
)

// Logical is an itinerary resolved from a possibly nested path specification.
// The embedded Path holds the deduplicated raw tokens (with gate suffixes) the
// carrier visits; derived attributes are computed once at construction.
type Logical struct {
	Path
	nodes       []Group
	defaultGate string
	physical    Path
	gates       Path
	trace       [][]string
	inputs      map[string][]string
	outputs     map[string][]string
}

func newLogical(nodes []Group, opts *options) (*Logical, error) {
	for i, group := range nodes {
		if len(group) == 0 {
			return nil, malformed(notation(nodes, opts.separator), "empty node group at position %d", i)
		}
		for _, node := range group {
			if node.IsGroup() && node.Width() == 0 {
				return nil, malformed(notation(nodes, opts.separator), "empty nested group at position %d", i)
			}
		}
	}
	ret := &Logical{
		nodes:       nodes,
		defaultGate: opts.defaultGate,
		inputs:      map[string][]string{},
		outputs:     map[string][]string{},
	}
	var flat []string
	for _, group := range nodes {
		flat = append(flat, group.Flatten()...)
	}
	tokens := unique(flat)
	ret.Path = Path{tokens: tokens, separator: opts.separator}

	physical := make([]string, len(tokens))
	gates := make([]string, len(tokens))
	for i, token := range tokens {
		physical[i], gates[i] = SplitGate(token, opts.defaultGate)
	}
	ret.physical = Path{tokens: physical, separator: opts.separator}
	ret.gates = Path{tokens: gates, separator: opts.separator}

	var err error
	if ret.trace, err = computeTrace(nodes, opts.separator); err != nil {
		return nil, err
	}
	ret.computeInputs()
	return ret, nil
}

// SplitGate splits a raw token into its physical station name and gate.
// All segments after the first '#' are joined into one gate; an empty gate
// resolves to defaultGate.
func SplitGate(token, defaultGate string) (string, string) {
	parts := strings.Split(token, GateSeparator)
	gate := strings.Join(parts[1:], "")
	if gate == "" {
		gate = defaultGate
	}
	return parts[0], gate
}

func computeTrace(nodes []Group, separator string) ([][]string, error) {
	if len(nodes) == 0 {
		return [][]string{}, nil
	}
	trace := make([][]string, len(nodes))
	trace[0] = make([]string, nodes[0].Width())
	for i := 1; i < len(nodes); i++ {
		upstream := collapse(nodes[i-1].Flatten())
		trace[i] = make([]string, 0, nodes[i].Width())
		for j, node := range nodes[i] {
			if j >= len(upstream) {
				return nil, malformed(notation(nodes, separator), "group %d slot %d has no upstream slot in group %d", i, j, i-1)
			}
			predecessor := upstream[j]
			if predecessor == NoPredecessor {
				if j >= len(trace[i-1]) {
					return nil, malformed(notation(nodes, separator), "group %d slot %d inherits a missing trace entry of group %d", i, j, i-1)
				}
				predecessor = trace[i-1][j]
			}
			for k := 0; k < node.Width(); k++ {
				trace[i] = append(trace[i], predecessor)
			}
		}
	}
	return trace, nil
}

func (l *Logical) computeInputs() {
	for i, group := range l.nodes {
		for j, token := range group.Flatten() {
			if token == NoPredecessor {
				continue
			}
			predecessor := l.trace[i][j]
			if predecessor == NoPredecessor || predecessor == token {
				continue
			}
			l.inputs[token] = appendUnique(l.inputs[token], predecessor)
			l.outputs[predecessor] = appendUnique(l.outputs[predecessor], token)
		}
	}
}

// DefaultGate returns the gate assigned to tokens without a suffix
func (l *Logical) DefaultGate() string {
	return l.defaultGate
}

// Nodes returns a copy of the node groups
func (l *Logical) Nodes() []Group {
	ret := make([]Group, len(l.nodes))
	for i, group := range l.nodes {
		ret[i] = group.clone()
	}
	return ret
}

// PhysicalPath returns gate-stripped tokens aligned with the itinerary
func (l *Logical) PhysicalPath() Path {
	return l.physical
}

// GatesPath returns gate labels aligned with PhysicalPath
func (l *Logical) GatesPath() Path {
	return l.gates
}

// Physical returns the station name at index i
func (l *Logical) Physical(i int) string {
	return l.physical.At(i)
}

// Gate returns the gate at index i
func (l *Logical) Gate(i int) string {
	return l.gates.At(i)
}

// DataTrace returns per group, per slot upstream tokens
func (l *Logical) DataTrace() [][]string {
	ret := make([][]string, len(l.trace))
	for i, slots := range l.trace {
		ret[i] = append([]string(nil), slots...)
	}
	return ret
}

// Inputs returns token -> distinct upstream tokens
func (l *Logical) Inputs() map[string][]string {
	return copyAdjacency(l.inputs)
}

// Outputs returns token -> distinct downstream tokens
func (l *Logical) Outputs() map[string][]string {
	return copyAdjacency(l.outputs)
}

// InputsOf returns upstream tokens feeding token
func (l *Logical) InputsOf(token string) []string {
	return append([]string(nil), l.inputs[token]...)
}

// OutputsOf returns downstream tokens fed by token
func (l *Logical) OutputsOf(token string) []string {
	return append([]string(nil), l.outputs[token]...)
}

// IsLinear returns true when every group holds exactly one token
func (l *Logical) IsLinear() bool {
	for _, group := range l.nodes {
		if len(group) != 1 || group[0].IsGroup() || group[0].IsPlaceholder() {
			return false
		}
	}
	return true
}

// Notation renders the node groups in the textual grammar accepted by Parse,
// e.g. "a/((b|c))/(d|d)"
func (l *Logical) Notation() string {
	return notation(l.nodes, l.Separator())
}

func notation(nodes []Group, separator string) string {
	parts := make([]string, len(nodes))
	for i, group := range nodes {
		if len(group) == 1 && !group[0].IsGroup() && !group[0].IsPlaceholder() {
			parts[i] = group[0].Token
			continue
		}
		parts[i] = renderGroup(group)
	}
	return strings.Join(parts, separator)
}

func renderGroup(group []*Node) string {
	items := make([]string, len(group))
	for i, node := range group {
		if node.IsGroup() {
			items[i] = renderGroup(node.Group)
			continue
		}
		if node != nil {
			items[i] = node.Token
		}
	}
	return "(" + strings.Join(items, "|") + ")"
}

func copyAdjacency(src map[string][]string) map[string][]string {
	ret := make(map[string][]string, len(src))
	for k, v := range src {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}
