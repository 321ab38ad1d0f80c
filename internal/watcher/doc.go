// Package watcher decides when a set of liveness markers has gone stale.
//
// A Watcher sleeps for one poll interval, reads the modification time of
// every marker, and evaluates its termination predicate from scratch. It
// repeats until the predicate holds or a read fails. No state is carried
// between polls other than the poll count.
//
// Key features:
//   - Explicit termination modes: AllStale (default) and AnyStale
//   - Sleep-then-poll ordering, configurable poll interval
//   - Injectable Clock and marker.Source for tests without wall-clock sleeps
//   - Daemon mode support with PID file management
//
// Example usage:
//
//	markers, err := marker.Initialize([]string{"/run/app.heartbeat"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	w, err := watcher.New(markers, watcher.Options{
//		Timeout: 10 * time.Minute,
//		Mode:    watcher.AllStale,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := w.Watch(ctx)
//	if err != nil {
//		// marker lost or interrupted
//	}
//	fmt.Println(res.State)
package watcher
