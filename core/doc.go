// Package core provides the foundational message types shared by the model
// adapters and the collaboration orchestrator:
//
//   - Content (a role plus ordered parts)
//   - the closed Part interface and its TextPart variant
//   - Role constants and identifier generation
//
// The package has no knowledge of vendors, participants or phases.
package core
