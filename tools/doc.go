// Package tools defines the tools an agent-driven extraction run may
// invoke, and a registry to look them up by name when the model requests
// a call.
package tools
