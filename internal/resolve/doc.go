// Package resolve contains the work-hierarchy resolution engine and the
// manager that coordinates whole runs.
//
// # Resolution
//
// A Resolver ascends from a track's leaf work to the root of its
// hierarchy, one lookup per level, through a shared run Cache:
//
//	cache := resolve.NewCache()
//	resolver := resolve.NewResolver(client, cache, logger)
//	chain, warnings, err := resolver.Resolve(ctx, leafWorkID)
//
// Lookup failures never abort a track: they are folded into warnings and
// a partial chain, so a flaky service degrades the tags instead of the
// run. Cycles in the parts graph are detected per ascent and truncate the
// chain with a warning.
//
// # Aggregation
//
// The Aggregator tracks outstanding tracks per album and computes the
// album-level tags (single_work_album, work_part_levels) once every track
// has settled. Its Pending signal tells the host not to write output
// while resolutions are still in flight.
//
// # Manager
//
// The Manager ties the run together:
//
//	mgr := resolve.NewManager(settings, logger, onProgress)
//	if err := mgr.Initialize(ctx, musicRoot); err != nil { ... }
//	if err := mgr.StartResolutions(ctx); err != nil { ... }
//
// Albums resolve concurrently up to max_concurrent_albums, tracks within
// an album up to max_concurrent_tracks, with all traffic funneled through
// one rate-limited client.
package resolve
