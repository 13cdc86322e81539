// Package bootstrap provides uniform application lifecycle management for
// the rendering binaries. It ties together configuration, logging, the
// component registry, and signal handling so that the daemon and the CLI
// share the same startup and shutdown sequence.
//
// Lifecycle phases:
//
//  1. Initialize: start all registered components in registration order.
//  2. Configure: run business-layer setup callbacks.
//  3. Ready: verify component health and run OnReady hooks.
//  4. Run or RunTask: block on a shutdown signal, or execute a finite task.
//  5. Stop: run OnStop hooks and stop components in reverse order.
package bootstrap
