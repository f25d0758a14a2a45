// Copyright 2020, Square, Inc.

// Package retry calls a function until it succeeds or runs out of tries.
package retry

import (
	"time"
)

type TryFunc func() error
type LogFunc func(error)

// Do calls tryFunc up to tries times, sleeping between calls, and returns
// nil on the first success or the last error. Every failure except the last is
// passed to logFunc if it is not nil. tries less than 1 is treated as 1.
func Do(tries int, sleep time.Duration, tryFunc TryFunc, logFunc LogFunc) error {
	var err error
	for try := 1; ; try++ {
		if err = tryFunc(); err == nil {
			return nil
		}
		if try >= tries {
			return err
		}
		if logFunc != nil {
			logFunc(err)
		}
		time.Sleep(sleep)
	}
}
