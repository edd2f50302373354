// Package render produces the descriptor payloads the deployment core
// applies. Payloads come either from typed builders (the default) or from
// rendering a local Helm chart; the core treats both as opaque.
package render
