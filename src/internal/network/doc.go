// Package network models the configuration of a ZeroTier controller network.
//
// A Network carries its routes, IP assignment pools, traffic rules and the
// optional capabilities and tags lists. Its JSON encoding is the controller
// wire format: field names, optional fields and null handling match what the
// controller accepts and returns.
//
// # Building networks
//
//   - Default returns the link-local template network.
//   - With builds a single-subnet network from explicit inputs.
//   - New applies functional options on top of Default.
//
// # Checking networks
//
// VerifyRoutes enforces the gateway rule: every route with a gateway needs a
// carrying route whose target contains that gateway. Validate runs the full
// set of checks before a network is submitted and returns ValidationErrors.
package network
