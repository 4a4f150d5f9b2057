package nvmdrc

import "sync"

// batchConcurrency bounds the number of in-flight marker writes to limit
// filesystem contention.
const batchConcurrency = 3

// syncMarker is stubbed in tests to observe batch scheduling.
var syncMarker = Sync

// BatchSync writes the same version to every project path's marker file,
// running at most 3 writes concurrently. All writes are attempted; the first
// error encountered is returned after every write has completed. The batch
// is best-effort, not atomic: writes that finished before a failure stay on
// disk. Missing project directories are the usual soft condition and do not
// fail the batch.
func BatchSync(paths []string, version string) error {
	if len(paths) == 0 {
		return nil
	}

	sem := make(chan struct{}, batchConcurrency)
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, dir := range paths {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			_, errs[i] = syncMarker(dir, version)
		}(i, dir)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
