package path

// NoPredecessor marks a trace slot without an upstream station; the same empty
// token denotes a placeholder in node groups.
const NoPredecessor = ""

// Node is a single entry of a node group: a station token, a placeholder
// (empty token, no group) or a nested group of alternatives.
type Node struct {
	Token string  `json:"token,omitempty" yaml:"token,omitempty"`
	Group []*Node `json:"group,omitempty" yaml:"group,omitempty"`
}

// Group represents parallel alternatives occupying one itinerary position
type Group []*Node

// Token creates a token node
func Token(name string) *Node {
	return &Node{Token: name}
}

// Placeholder creates an unnamed node carrying forward the previous resolution
func Placeholder() *Node {
	return &Node{}
}

// Alternatives creates a nested group node
func Alternatives(nodes ...*Node) *Node {
	if nodes == nil {
		nodes = []*Node{}
	}
	return &Node{Group: nodes}
}

// IsGroup returns true for nested group nodes
func (n *Node) IsGroup() bool {
	return n != nil && n.Group != nil
}

// IsPlaceholder returns true for unnamed nodes
func (n *Node) IsPlaceholder() bool {
	return n == nil || (n.Group == nil && n.Token == NoPredecessor)
}

// Width returns the number of flattened slots of the node
func (n *Node) Width() int {
	if !n.IsGroup() {
		return 1
	}
	ret := 0
	for _, child := range n.Group {
		ret += child.Width()
	}
	return ret
}

func (n *Node) flatten(dst []string) []string {
	if !n.IsGroup() {
		if n == nil {
			return append(dst, NoPredecessor)
		}
		return append(dst, n.Token)
	}
	for _, child := range n.Group {
		dst = child.flatten(dst)
	}
	return dst
}

func (n *Node) clone() *Node {
	if n == nil {
		return Placeholder()
	}
	ret := &Node{Token: n.Token}
	if n.Group != nil {
		ret.Group = make([]*Node, len(n.Group))
		for i, child := range n.Group {
			ret.Group[i] = child.clone()
		}
	}
	return ret
}

// Flatten returns all slots of the group in order, placeholders as NoPredecessor
func (g Group) Flatten() []string {
	var ret []string
	for _, node := range g {
		ret = node.flatten(ret)
	}
	return ret
}

// Width returns the number of flattened slots
func (g Group) Width() int {
	ret := 0
	for _, node := range g {
		ret += node.Width()
	}
	return ret
}

func (g Group) clone() Group {
	ret := make(Group, len(g))
	for i, node := range g {
		ret[i] = node.clone()
	}
	return ret
}

// collapse removes consecutive duplicates
func collapse(tokens []string) []string {
	ret := make([]string, 0, len(tokens))
	for i, token := range tokens {
		if i > 0 && tokens[i-1] == token {
			continue
		}
		ret = append(ret, token)
	}
	return ret
}

func unique(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	ret := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == NoPredecessor || seen[token] {
			continue
		}
		seen[token] = true
		ret = append(ret, token)
	}
	return ret
}

func appendUnique(list []string, token string) []string {
	for _, candidate := range list {
		if candidate == token {
			return list
		}
	}
	return append(list, token)
}
