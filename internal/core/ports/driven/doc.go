// Package driven defines the interfaces the core depends on
// (storage, chunking, normalisation, LLM). Adapters implement them.
package driven
