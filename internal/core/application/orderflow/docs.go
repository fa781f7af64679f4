// Package orderflow implements the quote/confirm order orchestrator.
//
// A Flow is one booking in progress for one back-office session. It owns the
// idempotency keys of its submission attempts, sequences quote, create and
// confirm against the order desk, and admits a single mutating call at a
// time. Local state advances only after the desk acknowledges success.
//
// Stages:
//
//	DRAFTING ──quote──> QUOTED ──create+confirm──> CONFIRMED
//	                      │
//	                      └─create ok, confirm failed──> PARTIALLY_CONFIRMED ──retry──> CONFIRMED
//
// A Registry keeps one Flow per session and resets flows left idle.
package orderflow
