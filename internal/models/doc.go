// Package models defines the persisted domain models for calckit.
//
// # Models
//
//   - Entry: one saved calculation (inputs and outputs kept as opaque JSON)
//   - GroupPreset: a reusable participant list for dutch-pay calculations
//
// Calculations themselves are stateless; only history is persisted, and it is
// always scoped to an anonymous device ID.
//
// # Design Principles
//
//  1. Calculation inputs and outputs are stored as raw JSON so the history
//     format never constrains the calculators
//  2. Identifiers are strings (ULIDs for entries) so entries sort by creation time
//  3. No pointers between models; relationships use IDs
package models
