// Package client implements the interactive desk-client runtime.
//
// It wires the terminal UI flows, client services, local session storage and
// the wallet provider into a single process lifecycle.
package client
