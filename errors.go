package runner

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
)

// ResolutionError means the task definition or the network placement of the
// live service could not be determined. Nothing was created on the platform.
type ResolutionError struct {
	Op  string
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not resolve %s", e.Op)
	}
	return fmt.Sprintf("could not resolve %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *ResolutionError) Unwrap() error { return e.Err }

// LaunchError means the platform rejected the task submission or returned
// no execution handle. Nothing is running remotely.
type LaunchError struct {
	Reason string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not launch the migration task: %s", e.Reason)
	}
	return fmt.Sprintf("could not launch the migration task: %v", e.Err)
}

// Unwrap returns the underlying cause
func (e *LaunchError) Unwrap() error { return e.Err }

// ExecutionError means the task stopped without a usable exit code,
// e.g. it was killed during provisioning
type ExecutionError struct {
	TaskArn string
	Reason  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("the migration task stopped without an exit code: %s", e.Reason)
}

// MigrationFailure means the remote migration command ran and exited
// non-zero. The code is propagated verbatim as the process exit status.
type MigrationFailure struct {
	ExitCode int64
}

func (e *MigrationFailure) Error() string {
	return fmt.Sprintf("the migration task exited with code %d", e.ExitCode)
}

var (
	exitNormally  = aws.Int64(0)
	exitWithError = aws.Int64(1)
)

// ExitCode maps an error from Migrate to the process exit status
func ExitCode(err error) *int64 {
	if err == nil {
		return exitNormally
	}
	if failure, ok := err.(*MigrationFailure); ok {
		return aws.Int64(failure.ExitCode)
	}
	return exitWithError
}
