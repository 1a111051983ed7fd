// Package memory archives completed episodes. Agents themselves are
// stateless across runs; callers that want history (for audits, regression
// sets, or re-scoring with a different judge) save each episode here.
//
// The Store interface is small on purpose: the in-memory implementation is
// suitable for tests and single-process tools, and a database-backed store
// can be dropped in at wiring time without touching agent code.
package memory
