package carrier

import (
	"github.com/viant/fluxpath/internal/idgen"
	"github.com/viant/fluxpath/model/path"
)

// Input is an upstream result assembled for a merge station
type Input struct {
	Station string
	Payload interface{}
}

// Carrier is the unit of work routed through a network. A carrier is owned by
// exactly one traversal at a time and is not safe for concurrent mutation.
type Carrier struct {
	// ID labels the carrier in logs and traces; it is not required to be unique
	ID string
	// Payload is transformed by every visited station
	Payload interface{}
	// Context is visible to all stations on the itinerary
	Context *Context

	itinerary   *path.Logical
	pathOptions []path.Option
	position    int
	moved       bool
	inputs      []Input
	outputs     map[string]interface{}
	parent      *Carrier
	traversals  int
}

// New creates a carrier; itinerary accepts any spec supported by path.Parse
func New(id string, payload interface{}, itinerary interface{}, options ...Option) (*Carrier, error) {
	ret := &Carrier{ID: id, Payload: payload}
	for _, opt := range options {
		opt(ret)
	}
	if ret.ID == "" {
		ret.ID = idgen.New()
	}
	if ret.Context == nil {
		ret.Context = NewContext(nil)
	}
	if err := ret.SetItinerary(itinerary); err != nil {
		return nil, err
	}
	return ret, nil
}

// Itinerary returns the resolved itinerary
func (c *Carrier) Itinerary() *path.Logical {
	return c.itinerary
}

// SetItinerary replaces the itinerary and rewinds the cursor
func (c *Carrier) SetItinerary(spec interface{}) error {
	itinerary, err := path.Parse(spec, c.pathOptions...)
	if err != nil {
		return err
	}
	c.itinerary = itinerary
	c.Rewind()
	return nil
}

// Rewind moves the cursor back to the first station and clears recorded outputs
func (c *Carrier) Rewind() {
	c.position = 0
	c.moved = false
	c.inputs = nil
	c.outputs = map[string]interface{}{}
}

// Position returns the cursor
func (c *Carrier) Position() int {
	return c.position
}

// Done returns true once the cursor reached the end of the itinerary
func (c *Carrier) Done() bool {
	return c.position >= c.itinerary.Len()
}

// Token returns the raw itinerary token at the cursor
func (c *Carrier) Token() string {
	if c.Done() {
		return ""
	}
	return c.itinerary.At(c.position)
}

// Station returns the physical station name at the cursor
func (c *Carrier) Station() string {
	if c.Done() {
		return ""
	}
	return c.itinerary.Physical(c.position)
}

// Gate returns the gate at the cursor
func (c *Carrier) Gate() string {
	if c.Done() {
		return ""
	}
	return c.itinerary.Gate(c.position)
}

// MoveTo sets the cursor to index; the move must be strictly forward and land
// on a valid index or the end of the itinerary.
func (c *Carrier) MoveTo(index int) error {
	if index <= c.position || index > c.itinerary.Len() {
		return &InvalidJumpError{CarrierID: c.ID, From: c.position, To: index, Length: c.itinerary.Len()}
	}
	c.position = index
	c.moved = true
	return nil
}

// MoveToStation moves the cursor to the next occurrence of token after the current position
func (c *Carrier) MoveToStation(token string) error {
	index := c.itinerary.IndexFrom(token, c.position+1)
	if index == -1 {
		return &InvalidJumpError{CarrierID: c.ID, From: c.position, To: -1, Length: c.itinerary.Len(), Token: token}
	}
	return c.MoveTo(index)
}

// Skip ends the traversal after the current station
func (c *Carrier) Skip() error {
	return c.MoveTo(c.itinerary.Len())
}

// Restore puts the cursor back at position and discards any pending redirect
func (c *Carrier) Restore(position int) {
	c.position = position
	c.moved = false
}

// Moved reports whether a station redirected the cursor during the current step
func (c *Carrier) Moved() bool {
	return c.moved
}

// Advance completes the current step: the cursor moves by one unless a station already moved it.
func (c *Carrier) Advance() {
	if !c.moved {
		c.position++
	}
	c.moved = false
}

// Record stores the output produced by the station token
func (c *Carrier) Record(token string, output interface{}) {
	if c.outputs == nil {
		c.outputs = map[string]interface{}{}
	}
	c.outputs[token] = output
}

// Output returns the output recorded for token in the current traversal
func (c *Carrier) Output(token string) (interface{}, bool) {
	value, ok := c.outputs[token]
	return value, ok
}

// Inputs returns upstream results assembled for the current station
func (c *Carrier) Inputs() []Input {
	return c.inputs
}

// InputOf returns the upstream result of station token for the current station
func (c *Carrier) InputOf(token string) (interface{}, bool) {
	for _, input := range c.inputs {
		if input.Station == token {
			return input.Payload, true
		}
	}
	return nil, false
}

// SetInputs sets upstream results for the current station
func (c *Carrier) SetInputs(inputs []Input) {
	c.inputs = inputs
}

// Parent returns the outer carrier when running inside a sub-network
func (c *Carrier) Parent() *Carrier {
	return c.parent
}

// Traversals returns the number of completed traversals
func (c *Carrier) Traversals() int {
	return c.traversals
}

// MarkTraversed increments the completed traversal counter
func (c *Carrier) MarkTraversed() {
	c.traversals++
}
