// Package server exposes the launcher over a small local HTTP API.
//
// Routes:
//
//	GET|POST /api/launch/{name}  launch an app, JSON status + message + port
//	GET      /api/apps           apps discovered under the apps directory
//	GET      /api/ports          assignments made by this process
//
// There are deliberately no status or stop routes: launched processes are
// not supervised.
package server
