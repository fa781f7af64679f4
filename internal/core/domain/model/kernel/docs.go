// Package kernel holds the value objects shared by the shipment model:
//   - UUID: identifier wrapping github.com/google/uuid
//   - Dimensions: length, width and height in centimetres, with volume in cubic metres
//   - Weight: a non-negative mass in grams
//   - Fee: an amount in the smallest currency unit that may be unknown
//
// All of them are immutable and safe to copy.
package kernel
