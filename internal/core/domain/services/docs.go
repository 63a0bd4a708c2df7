// Package services contains stateless domain services: the transition
// detector that derives a single canonical event from a before/after order
// diff, and the payload builder that wraps it in the webhook envelope.
// Both are pure functions over order snapshots.
package services
