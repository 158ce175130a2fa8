// Package arrival wires the checkpoint webhooks to the arrival-time
// estimation pipeline.
//
// Inbound pings record a person's progress through three physical
// checkpoints; when the final one is reached within tolerance the
// estimator resolves the next train's destination arrival time and the
// result is pushed as a LINE message.
package arrival
