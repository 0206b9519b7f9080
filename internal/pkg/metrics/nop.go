package metrics

import (
	"context"
	"time"
)

// NopCollector ничего не собирает.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

func (c *NopCollector) RecordAppend(string, string, bool)            {}
func (c *NopCollector) RecordFiltered(string)                        {}
func (c *NopCollector) RecordQuery(string, time.Duration, int, bool) {}
func (c *NopCollector) Push(context.Context) error                   { return nil }
