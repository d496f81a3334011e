package meshpick

import (
	"sync/atomic"
	"testing"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
	}{
		{"Empty", 4, 0},
		{"Single worker", 1, 10},
		{"More workers than data", 8, 3},
		{"Uneven chunks", 3, 10},
		{"Zero workers", 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]*int, tt.size)
			for i := range data {
				data[i] = new(int)
			}

			var calls atomic.Int32
			task(tt.workers, data, func(d *int) {
				*d++
				calls.Add(1)
			})

			if int(calls.Load()) != tt.size {
				t.Errorf("Expected %d calls, got %d", tt.size, calls.Load())
			}
			for i, d := range data {
				if *d != 1 {
					t.Errorf("Element %d visited %d times", i, *d)
				}
			}
		})
	}
}
