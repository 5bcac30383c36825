// Package templates holds the route-handler source that routegen writes into
// the invoice app.
package templates

import (
	_ "embed"
	"path/filepath"
)

// CustomerRoute is the Next.js route handler for /api/customers/[id].
//
//go:embed customer_route.ts
var CustomerRoute []byte

// DefaultTarget is where CustomerRoute is written, relative to the working directory.
var DefaultTarget = filepath.Join("invoice-app", "app", "api", "customers", "[id]", "route.ts")

// Payload returns a copy of the customer route so callers cannot mutate the embedded bytes.
func Payload() []byte {
	out := make([]byte, len(CustomerRoute))
	copy(out, CustomerRoute)
	return out
}
