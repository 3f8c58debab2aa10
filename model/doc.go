// Package model defines the provider‑agnostic chat capability used by
// collaboration participants.
//
// Core goals:
//   - Unify streaming + non‑streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Offer Chat, a synchronous helper that drains a Generate call
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI-compatible endpoints, Anthropic) implement the Model
// interface in sub-packages so the orchestrator stays decoupled from vendor SDKs.
package model
