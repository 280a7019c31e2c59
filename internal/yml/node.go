// Package yml adds navigation helpers on top of yaml.v3 nodes.
package yml

import (
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

type (
	// Node wraps yaml.Node
	Node yaml.Node
)

// Unmarshal decodes data into a node, skipping the document wrapper
func Unmarshal(data []byte) (*Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return (*Node)(node.Content[0]), nil
	}
	return (*Node)(&node), nil
}

// Lookup returns the value of key in a mapping node or nil
func (n *Node) Lookup(key string) *Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// IsMap returns true for mapping nodes
func (n *Node) IsMap() bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence returns true for sequence nodes
func (n *Node) IsSequence() bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// Items iterates sequence items
func (n *Node) Items(callback func(index int, node *Node) error) error {
	if n == nil {
		return nil
	}
	for i := 0; i < len(n.Content); i++ {
		if err := callback(i, (*Node)(n.Content[i])); err != nil {
			return err
		}
	}
	return nil
}

// Pairs iterates mapping entries in document order
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	if n == nil {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Interface converts the node into plain Go values
func (n *Node) Interface() interface{} {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			return toolbox.AsBoolean(n.Value)
		case "!!null":
			return nil
		case "!!float":
			return toolbox.AsFloat(n.Value)
		case "!!int":
			return toolbox.AsInt(n.Value)
		default:
			return n.Value
		}
	case yaml.MappingNode:
		var aMap = make(map[string]interface{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			aMap[n.Content[i].Value] = (*Node)(n.Content[i+1]).Interface()
		}
		return aMap
	case yaml.SequenceNode:
		var aSlice = make([]interface{}, 0, len(n.Content))
		for i := 0; i < len(n.Content); i++ {
			aSlice = append(aSlice, (*Node)(n.Content[i]).Interface())
		}
		return aSlice
	case yaml.AliasNode:
		return (*Node)(n.Alias).Interface()
	}
	return nil
}

// Map returns a mapping node as map or nil
func (n *Node) Map() map[string]interface{} {
	ret, _ := n.Interface().(map[string]interface{})
	return ret
}

// String returns scalar text
func (n *Node) String() string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// Strings returns a scalar or a sequence of scalars as a string slice
func (n *Node) Strings() []string {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}
	}
	var ret []string
	for _, item := range n.Content {
		ret = append(ret, (*Node)(item).String())
	}
	return ret
}
