// Package agent implements the episode loop: a Worker iteratively chooses
// between calling a tool and producing a final answer, bounded by a step
// limit and an optional periodic re-planning interval; a Manager is a Worker
// that can additionally delegate sub-tasks to named subordinate agents and
// fold their answers into its own reasoning.
//
// Every Run call is an independent episode with its own conversation and
// trace; agents keep no state across runs.
package agent
