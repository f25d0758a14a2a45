// Copyright 2020, Square, Inc.

package retry_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/square/kvdag/retry"
)

func TestDoSucceedsEventually(t *testing.T) {
	calls := 0
	var logged []error
	err := retry.Do(3, time.Millisecond,
		func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("try %d", calls)
			}
			return nil
		},
		func(err error) { logged = append(logged, err) },
	)
	if err != nil {
		t.Errorf("err = %s, expected nil", err)
	}
	if calls != 3 {
		t.Errorf("%d calls, expected 3", calls)
	}
	if diff := deep.Equal(logged, []error{fmt.Errorf("try 1"), fmt.Errorf("try 2")}); diff != nil {
		t.Error(diff)
	}
}

func TestDoReturnsLastError(t *testing.T) {
	calls := 0
	err := retry.Do(2, 0, func() error {
		calls++
		return fmt.Errorf("try %d", calls)
	}, nil)
	if err == nil || err.Error() != "try 2" {
		t.Errorf("err = %v, expected try 2", err)
	}
}

func TestDoZeroTries(t *testing.T) {
	calls := 0
	retry.Do(0, 0, func() error {
		calls++
		return fmt.Errorf("fail")
	}, nil)
	if calls != 1 {
		t.Errorf("%d calls, expected 1", calls)
	}
}
