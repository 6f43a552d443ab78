package aws

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecs"
)

// ListTaskDefinitions lists task definitions with the given query
func ListTaskDefinitions(ctx context.Context, sess *session.Session, input *ecs.ListTaskDefinitionsInput) (*ecs.ListTaskDefinitionsOutput, error) {
	return ecs.New(sess).ListTaskDefinitionsWithContext(ctx, input)
}

// DescribeTaskDefinition returns the full task definition for the given reference
func DescribeTaskDefinition(ctx context.Context, sess *session.Session, taskDefinition *string) (*ecs.TaskDefinition, error) {
	out, err := ecs.New(sess).DescribeTaskDefinitionWithContext(ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: taskDefinition,
	})
	if err != nil {
		return nil, err
	}
	return out.TaskDefinition, nil
}

// DescribeService returns the named service, or nil if the cluster doesn't know it
func DescribeService(ctx context.Context, sess *session.Session, cluster, service *string) (*ecs.Service, error) {
	out, err := ecs.New(sess).DescribeServicesWithContext(ctx, &ecs.DescribeServicesInput{
		Cluster:  cluster,
		Services: []*string{service},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Services) == 0 {
		return nil, nil
	}
	return out.Services[0], nil
}

// RunTask submits a one-off task and returns the platform's response as-is
func RunTask(ctx context.Context, sess *session.Session, input *ecs.RunTaskInput) (*ecs.RunTaskOutput, error) {
	return ecs.New(sess).RunTaskWithContext(ctx, input)
}

// WaitUntilTaskStopped blocks on the SDK's native waiter until the task
// reaches its terminal state
func WaitUntilTaskStopped(ctx context.Context, sess *session.Session, cluster, taskARN *string) error {
	return ecs.New(sess).WaitUntilTasksStoppedWithContext(ctx, &ecs.DescribeTasksInput{
		Cluster: cluster,
		Tasks:   []*string{taskARN},
	})
}

// DescribeTask returns the current snapshot of a single task
func DescribeTask(ctx context.Context, sess *session.Session, cluster, taskARN *string) (*ecs.Task, error) {
	out, err := ecs.New(sess).DescribeTasksWithContext(ctx, &ecs.DescribeTasksInput{
		Cluster: cluster,
		Tasks:   []*string{taskARN},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Tasks) == 0 {
		return nil, nil
	}
	return out.Tasks[0], nil
}
