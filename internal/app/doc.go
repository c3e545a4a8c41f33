// Package app wires the timer together. It owns the event loop, the engine
// and its collaborators, the console and the optional health and metrics
// server, decoupled from any specific entrypoint like a CLI.
package app
