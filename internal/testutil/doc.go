// Package testutil contains helper fakes used across tests to reduce
// boilerplate: scripted chat models standing in for vendor adapters and a
// sink that records progress notifications. These helpers are not intended
// for production usage.
package testutil
