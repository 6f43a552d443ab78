package runner

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
)

func TestResolutionErrorUnwrap(t *testing.T) {
	cause := errors.New("service not found")
	err := error(&ResolutionError{Op: "network placement", Err: cause})
	assert.True(t, errors.Is(err, cause))

	var resolution *ResolutionError
	assert.True(t, errors.As(err, &resolution))
	assert.Equal(t, "network placement", resolution.Op)
}

func TestLaunchErrorReasonOnly(t *testing.T) {
	err := &LaunchError{Reason: "the platform returned no task"}
	assert.Contains(t, err.Error(), "the platform returned no task")
	assert.Nil(t, err.Unwrap())
}

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, int64(0), aws.Int64Value(ExitCode(nil)))
	assert.Equal(t, int64(1), aws.Int64Value(ExitCode(&ResolutionError{Op: "task definition"})))
	assert.Equal(t, int64(1), aws.Int64Value(ExitCode(&LaunchError{Reason: "rejected"})))
	assert.Equal(t, int64(1), aws.Int64Value(ExitCode(&ExecutionError{Reason: "killed"})))
	assert.Equal(t, int64(7), aws.Int64Value(ExitCode(&MigrationFailure{ExitCode: 7})))
}
