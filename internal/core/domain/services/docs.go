// Package services provides domain services that work on shipments but do not
// belong to the aggregate itself.
//
// The package includes:
//   - Reconcile: the pure pricing reconciliation function
//   - PriceReconciler: feeds a shipment's declared and measured attributes to Reconcile
package services
