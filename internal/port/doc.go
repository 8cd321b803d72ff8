// Package port implements port allocation for launched applications.
//
// The allocation algorithm is a linear scan:
//
//	for candidate := start; candidate < end; candidate++ { ... }
//
// The first candidate that no application currently holds wins, so the
// lowest free port is always chosen. Table wraps the assignment map and a
// mutex so that "scan for a free port" and "record the port" happen as one
// atomic step. Two concurrent launches can never observe and claim the same
// port.
//
// Optionally a Scanner can be attached to a Table. It verifies OS-level
// availability via net.Listen, so ports bound by unrelated processes on the
// host are skipped as well.
package port
