// Package shutdown provides graceful shutdown for the beacon server.
//
// It blocks the process on an external termination signal (SIGINT,
// SIGTERM) or a programmatic trigger, then runs registered cleanup
// hooks in reverse order under a timeout. The listener release path
// registers here so the bound port is always freed before exit, even
// when shutdown begins because of a startup error.
package shutdown
