// Package models defines client-side data models shared by the recipebox
// services, the simulated backend and the CLI.
package models
