// Package driving defines the interfaces callers (CLI, TUI, MCP) use
// to drive the core services.
package driving
