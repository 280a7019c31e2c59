package carrier

import "github.com/viant/fluxpath/model/path"

// Option customises a carrier
type Option func(c *Carrier)

// WithContext seeds the carrier context
func WithContext(values map[string]interface{}) Option {
	return func(c *Carrier) {
		c.Context = NewContext(values)
	}
}

// WithSharedContext makes the carrier use an existing context, e.g. one forwarded by a sub-network
func WithSharedContext(ctx *Context) Option {
	return func(c *Carrier) {
		if ctx != nil {
			c.Context = ctx
		}
	}
}

// WithParent links the carrier to the outer carrier of a sub-network
func WithParent(parent *Carrier) Option {
	return func(c *Carrier) {
		c.parent = parent
	}
}

// WithPathOptions sets options used to parse itinerary specs
func WithPathOptions(options ...path.Option) Option {
	return func(c *Carrier) {
		c.pathOptions = append(c.pathOptions, options...)
	}
}
