package supervisor

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/viant/fluxpath/model/carrier"
)

// ExprPredicate compiles a boolean expression evaluated after every
// traversal; true re-queues the carrier. The expression sees payload,
// context, id and traversals.
func ExprPredicate(expression string) (Predicate, error) {
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return func(c *carrier.Carrier) (bool, error) {
		return run(program, c)
	}, nil
}

// UntilPredicate re-queues the carrier until expression becomes true
func UntilPredicate(expression string) (Predicate, error) {
	program, err := compile(expression)
	if err != nil {
		return nil, err
	}
	return func(c *carrier.Carrier) (bool, error) {
		done, err := run(program, c)
		return !done, err
	}, nil
}

func compile(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid predicate %q: %w", expression, err)
	}
	return program, nil
}

func run(program *vm.Program, c *carrier.Carrier) (bool, error) {
	output, err := expr.Run(program, map[string]interface{}{
		"payload":    c.Payload,
		"context":    c.Context.Values(),
		"id":         c.ID,
		"traversals": c.Traversals(),
	})
	if err != nil {
		return false, err
	}
	ret, _ := output.(bool)
	return ret, nil
}
