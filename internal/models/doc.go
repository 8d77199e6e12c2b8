// Package models defines the core domain models for the tipsplit settings
// backend.
//
// # Store boundary
//
// Everything the document store returns is a Document: an opaque id assigned
// by the store plus untyped fields. Documents belong to exactly one named
// collection and carry no references to other collections.
//
// # Entities
//
// The settings screens work with typed views of documents:
//   - Phase: a step of a service shift (e.g. "Lunch", "Close")
//   - EmployeePosition: a job position with its tip-pool points
//   - Project: a tracked project or location
//   - Role: an access role with a list of permissions
//
// Entities are produced by explicit decoders in the settings package, never
// by trusting the shape of a document.
//
// # Calculations
//
// SavedCalculation stores a bill/tip/people split with its derived amounts
// denormalized at calculation time.
package models
