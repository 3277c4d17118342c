package worker

import (
	"testing"

	"go.uber.org/goleak"
)

// Every controller must leave no goroutines behind after Close.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
