// Package criteria evaluates dao list parameters against entity attributes.
package criteria

import (
	"github.com/viant/fluxpath/service/dao"
)

// Match returns true when every parameter naming a known attribute accepts its
// value; parameters for unknown attributes are ignored.
func Match(attributes map[string]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		value, ok := attributes[parameter.Name]
		if !ok {
			continue
		}
		if !accepts(value, parameter.Value) {
			return false
		}
	}
	return true
}

func accepts(value string, expected interface{}) bool {
	switch actual := expected.(type) {
	case string:
		return value == actual
	case []string:
		for _, candidate := range actual {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return true
}
