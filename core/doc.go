// Package core contains the shared vocabulary types of refetch: the
// observable State snapshot, the Worker and Handle contracts, and the error
// taxonomy used by the controller. Higher layers (controller, façade) build
// on these types; workers and state subscribers interact only with this
// package.
package core
