// Package shipment provides the Shipment aggregate root and its status
// state machine.
//
// The package includes:
//   - Shipment: identity, booking intake, pricing snapshot, measured data and status
//   - Status and Step: the lifecycle and the staff actions that move it
//   - Decision: a planned transition, applied only after the order desk accepts it
//   - Item and Intake: booking data, including the STANDARD/EXPRESS size rules
//
// Key business rules:
//   - every step is judged by checklist gates; branching steps pick the clean
//     status when its gate passes and the needs-adjustment status otherwise
//   - both members of a branching pair share one row of the step table
//   - DELIVERED, RETURN_COMPLETED, DISPOSED and CLOSED are terminal
//   - the reconciled actual fee never drops below the quoted estimate
package shipment
