package util

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
)

// IsEmpty returns the value has a valid value or not
func IsEmpty(candidate *string) bool {
	return candidate == nil || aws.StringValue(candidate) == ""
}

// Retry runs fn up to attempts times with a fixed interval between tries.
// It returns nil as soon as fn succeeds, otherwise the last error.
func Retry(attempts int, interval time.Duration, fn func() error) (err error) {
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(interval)
		}
	}
	return err
}
