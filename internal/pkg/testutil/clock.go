package testutil

import (
	"sync"
	"time"
)

// StepClock возвращает часы, которые начинают с start и при каждом вызове
// сдвигаются на step. Безопасны для конкурентного использования.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// MustTime разбирает значение в формате "2006/01/02 15:04:05" (UTC) или паникует.
func MustTime(value string) time.Time {
	t, err := time.Parse("2006/01/02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}
