// Package cli provides the interactive recipebox shell.
//
// It wires configuration, durable storage, the simulated backend and the
// session and preference services, then runs a line-oriented REPL over them.
//
// Commands:
//   - login [username] / logout / whoami / profile
//   - fav <id> / favs / rate <id> <0-5> / prefs / dark
//   - status / help / exit
//
// whoami, profile and logout require a session; preference commands work
// for anonymous users too. The REPL is started via App.Run, which blocks
// until the user exits or input ends.
package cli
