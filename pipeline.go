package meshpick

import "sync"

// task calls fn on every element of data, split in contiguous chunks over at most
// workersCount goroutines. A single worker, or a single element, runs on the
// calling goroutine: picks with the default settings never spawn.
func task[T any](workersCount int, data []T, fn func(data T)) {
	dataSize := len(data)
	workersCount = min(workersCount, dataSize)
	if workersCount <= 1 {
		for _, d := range data {
			fn(d)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (dataSize + workersCount - 1) / workersCount
	for start := 0; start < dataSize; start += chunkSize {
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, d := range chunk {
				fn(d)
			}
		}(data[start:min(start+chunkSize, dataSize)])
	}
	wg.Wait()
}
