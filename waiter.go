package runner

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	awsutil "github.com/medic-chat/alembic-ecs-runner/internal/aws"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
)

// awaitCompletion blocks on the platform's native waiter until the task
// stops, then reads the migration container's exit code
func awaitCompletion(ctx context.Context, sess *session.Session, conf *conf.MigrateConfig, taskARN *string) (*ecs.Task, error) {
	if err := awsutil.WaitUntilTaskStopped(ctx, sess, conf.Common.EcsCluster, taskARN); err != nil {
		return nil, &ExecutionError{
			TaskArn: aws.StringValue(taskARN),
			Reason:  err.Error(),
		}
	}
	task, err := awsutil.DescribeTask(ctx, sess, conf.Common.EcsCluster, taskARN)
	if err != nil {
		return nil, &ExecutionError{
			TaskArn: aws.StringValue(taskARN),
			Reason:  err.Error(),
		}
	}
	if conf.Common.IsDebugMode {
		log.PrintJSON(task)
	}
	return task, taskOutcome(task)
}

// taskOutcome maps the stopped task snapshot to the tool's result:
// exit code 0 is success, a non-zero code is propagated verbatim, and a
// stopped task with no recorded code is an execution failure
func taskOutcome(task *ecs.Task) error {
	if task == nil {
		return &ExecutionError{Reason: "the stopped task is no longer described"}
	}
	if len(task.Containers) == 0 {
		return &ExecutionError{
			TaskArn: aws.StringValue(task.TaskArn),
			Reason:  "the stopped task reports no containers",
		}
	}
	container := task.Containers[0]
	if container.ExitCode == nil {
		reason := aws.StringValue(task.StoppedReason)
		if reason == "" {
			reason = "no exit code recorded"
		}
		return &ExecutionError{
			TaskArn: aws.StringValue(task.TaskArn),
			Reason:  reason,
		}
	}
	if code := aws.Int64Value(container.ExitCode); code != 0 {
		return &MigrationFailure{ExitCode: code}
	}
	return nil
}
