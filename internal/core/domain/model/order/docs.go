// Package order contains the delivery order aggregate and its invariants:
// the forward-only status lifecycle, the stop sequence owned by the order,
// and the status-keyed guards that restrict which fields an integrator may
// patch at each point of the lifecycle.
package order
