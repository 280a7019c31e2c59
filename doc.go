// Package fluxpath is a dataflow framework routing carriers through networks
// of named processing stations along declarative itineraries.
//
// An itinerary is a path: plain ("load/parse/dump") or grouped
// ("a/((b|c))/(d|d)") where parallel branches fork and merge. Networks are
// declared in YAML definitions and driven by a supervisor that can repeat a
// traversal until a predicate stops it:
//
//	srv, _ := fluxpath.New()
//	flow, _ := srv.Load(ctx, "network.yaml")
//	c, _ := flow.Send(ctx, "main", payload, nil)
//	fmt.Println(c.Payload)
//
// The runtime packages (runtime/network, runtime/supervisor) can also be used
// directly with a hand-built model/schema.
package fluxpath

// Version of the module
const Version = "0.1.0"
