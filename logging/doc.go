// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It also offers a FetchLogger with contextual
// helpers (component, invocation) for correlating controller activity.
package logging
