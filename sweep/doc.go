// Package sweep traces the paths a mechanism's joints travel while its
// drivers turn through a full revolution.
/*

A trace walks each driver of a solved mechanism through an angular sweep
in fixed steps, re-solving the joint positions at every step and recording
one coordinate sample per joint. Drivers are swept one at a time, in a
fixed precedence order: while driver k is active, drivers before k rest at
their last feasible angle and drivers after k rest at zero. Two phases are
run, one stepping forward (+3°) and one backward (-3°), both starting from
the zero configuration; their samples concatenate in phase order, so a
joint's path holds all forward samples first, then all backward ones.

Solver failures are expected: a mechanism may not be assemblable at every
driver angle. An infeasible step contributes one sentinel (NaN pair)
sample for every joint and ends the active driver's sweep -- no retry at
nearby angles. Samples are index-aligned across joints: entry k of every
joint's sequence belongs to the same mechanism configuration.

The tracer owns no numeric solver. It is configured with a Solver -- a
pure function from explicit joint positions plus driver angles to a fresh
frame of positions -- and threads the solved frame back in as the next
call's state, because a sliding joint's feasibility depends on where its
pin currently sits. Package expr provides the stock implementation.

Malformed configurations (no solver, empty drivers, NaN seed coordinates)
fail a trace up front with no partial output. Per-step solver errors never
escape a running trace.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sweep
