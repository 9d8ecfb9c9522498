package actor

import "context"

// Gather spawns each of runs as its own actor and waits for all of them
// to terminate, collecting one exit/exception record per target in runs
// order regardless of completion order — the same contract as WaitAll.
func Gather(ctx context.Context, runs ...RunFunc) ([]Value, error) {
	addrs := make([]Address, len(runs))
	for i, run := range runs {
		addrs[i] = Spawn(run)
	}
	return WaitAll(ctx, addrs...)
}

// WaitAll waits for every address in addrs to terminate and returns one
// record per address, in addrs order regardless of completion order:
// Map{"address": addr, "exit": result} on a normal exit, or
// Map{"address": addr, "exception": detail} otherwise — including a
// kill, which formats to ExceptionDetail same as any other abnormal
// termination. A failing sibling never hides the others' records: a
// supervisor can tell exactly which target failed and which succeeded,
// mirroring the original's Gather.main/wait_all returning the full list
// of {address, exit}/{address, exception} message dicts.
//
// ctx only bounds WaitAll's own patience: if it is done before every
// address has reported, WaitAll returns the records collected so far
// alongside ctx.Err(), without giving up on waiting for the still-silent
// addresses' own Wait (which is unbounded by ctx).
func WaitAll(ctx context.Context, addrs ...Address) ([]Value, error) {
	type outcome struct {
		idx    int
		record Value
	}

	records := make([]Value, len(addrs))
	done := make(chan outcome, len(addrs))
	for i, addr := range addrs {
		go func(i int, addr Address) {
			result, err := addr.Wait(context.Background())
			var record Value
			if err != nil {
				record = Map{"address": addr, "exception": formatException(err).toValue()}
			} else {
				record = Map{"address": addr, "exit": result}
			}
			done <- outcome{idx: i, record: record}
		}(i, addr)
	}

	for range addrs {
		select {
		case o := <-done:
			records[o.idx] = o.record
		case <-ctx.Done():
			return records, ctx.Err()
		}
	}
	return records, nil
}
