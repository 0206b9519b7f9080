package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepClock(t *testing.T) {
	start := MustTime("2021/03/01 10:00:00")
	clock := StepClock(start, time.Second)

	assert.Equal(t, start, clock())
	assert.Equal(t, start.Add(time.Second), clock())
	assert.Equal(t, start.Add(2*time.Second), clock())
}

func TestMustTime_Panics(t *testing.T) {
	assert.Panics(t, func() { MustTime("01/01/2021") })
}

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() { fmt.Println("captured") })
	assert.Equal(t, "captured\n", out)
}

func TestCaptureStdout_LargeOutput(t *testing.T) {
	line := strings.Repeat("x", 1023) + "\n"
	out := CaptureStdout(t, func() {
		for range 256 {
			fmt.Print(line)
		}
	})
	assert.Len(t, out, 256*1024)
}
