// Package order provides the Order aggregate and its append-only status timeline.
//
// The package includes:
//   - Order: the aggregate root holding the tracking code, owner, address references and current status
//   - Status: a closed enumeration of lifecycle states with labels and default event descriptions
//   - Event: one timeline entry recording a status at a point in time
//
// Key business rules:
//   - A new order starts in Created and records exactly one "order registered in system" event
//   - Delivered and Canceled are terminal; any further transition fails with TerminalStateViolationError
//   - Every accepted transition appends exactly one event, so Status always equals the latest event status
//   - Non-terminal orders accept any valid target status (no forward-edge check)
package order
