// Package services implements the core application logic behind the
// driving ports: ingestion, search, stats, deduplication and the
// LLM-backed advisor. Services depend only on the driven ports and the
// domain; adapters are injected at startup.
package services
