// Package plan implements the time-phased placement pass of the planning
// engine. It walks active work items in input order, resolves durations and
// dependency floors, and computes start and end instants against the working
// calendar. Per-zone completion maps let independent physical zones proceed
// in parallel within the same pass.
package plan
