// Package shutdown coordinates graceful termination of long-running
// nullmap-cli commands.
//
// A Handler waits for SIGINT, SIGTERM or cancellation of a context, then
// runs the registered hooks in reverse order of registration under a
// deadline.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(server.Shutdown)
//	err := h.Wait(ctx)
package shutdown
