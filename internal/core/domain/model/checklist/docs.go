// Package checklist implements the gate evaluator used by every shipment
// stage: an ordered set of named boolean preconditions combined in ALL or
// ANY mode. Gates are pure values, independent of the shipment state machine,
// so callers can enable or disable the next action from the same predicate
// the state machine enforces.
package checklist
