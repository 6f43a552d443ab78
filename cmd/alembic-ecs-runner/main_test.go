package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterruptContextCancelsOnSignal(t *testing.T) {
	ctx, stop := interruptContext()
	defer stop()

	process, err := os.FindProcess(os.Getpid())
	assert.Nil(t, err)
	assert.Nil(t, process.Signal(os.Interrupt))

	select {
	case <-ctx.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("the context was not cancelled on interrupt")
	}
}
