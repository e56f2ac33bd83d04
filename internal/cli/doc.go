// Package cli implements the interactive terminal client. It wires the
// session manager, product store and remote API client together and runs a
// small read-eval-print loop on top of them.
package cli
