// Package core defines the shared vocabulary of the ragmesh framework:
// role-tagged conversation content with a closed set of part types, the
// episode trace recorded by every agent run, and the ToolContext handed to
// tool invocations.
package core
