package runner

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	awsutil "github.com/medic-chat/alembic-ecs-runner/internal/aws"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
	"github.com/medic-chat/alembic-ecs-runner/internal/util"
)

const fargate = "FARGATE"

// The upgrade and the status check share one shell invocation so the check
// only runs after a successful upgrade
var migrationCommand = []*string{
	aws.String("bash"),
	aws.String("-lc"),
	aws.String("alembic upgrade head && alembic current"),
}

const (
	launchAttempts = 5
	launchInterval = 2 * time.Second
)

func launch(ctx context.Context, sess *session.Session, conf *conf.MigrateConfig, taskDef *string, placement *NetworkPlacement) (*ecs.Task, error) {
	input := buildRunTaskInput(conf, taskDef, placement)
	if conf.Common.IsDebugMode {
		log.PrintJSON(input)
	}
	var out *ecs.RunTaskOutput
	var fatal error
	// ECS throws ClientException while the service's execution role
	// propagates; retry a fixed number of times, then give up
	err := util.Retry(launchAttempts, launchInterval, func() error {
		var e error
		out, e = awsutil.RunTask(ctx, sess, input)
		if e == nil {
			return nil
		}
		if ae, ok := e.(awserr.Error); ok && strings.EqualFold(ae.Code(), ecs.ErrCodeClientException) {
			return e
		}
		fatal = e
		return nil
	})
	if fatal != nil {
		return nil, &LaunchError{Err: fatal}
	}
	if err != nil {
		return nil, &LaunchError{Err: err}
	}
	if len(out.Failures) > 0 {
		return nil, &LaunchError{Reason: aws.StringValue(out.Failures[0].Reason)}
	}
	if len(out.Tasks) == 0 {
		return nil, &LaunchError{Reason: "the platform returned no task"}
	}
	return out.Tasks[0], nil
}

func buildRunTaskInput(conf *conf.MigrateConfig, taskDef *string, placement *NetworkPlacement) *ecs.RunTaskInput {
	vpcConfig := &ecs.AwsVpcConfiguration{
		AssignPublicIp: aws.String(normalizePublicIP(placement.AssignPublicIP)),
		Subnets:        placement.Subnets,
	}
	// never submit an empty security-group list
	if len(placement.SecurityGroups) > 0 {
		vpcConfig.SecurityGroups = placement.SecurityGroups
	}
	return &ecs.RunTaskInput{
		Cluster:        conf.Common.EcsCluster,
		LaunchType:     aws.String(fargate),
		TaskDefinition: taskDef,
		Count:          aws.Int64(1),
		StartedBy:      aws.String(requestID),
		NetworkConfiguration: &ecs.NetworkConfiguration{
			AwsvpcConfiguration: vpcConfig,
		},
		Overrides: &ecs.TaskOverride{
			ContainerOverrides: []*ecs.ContainerOverride{
				{
					Name:    conf.ContainerName,
					Command: migrationCommand,
				},
			},
		},
	}
}

// normalizePublicIP keeps the exact enabled token and maps everything else,
// including absence, to disabled
func normalizePublicIP(policy *string) string {
	if aws.StringValue(policy) == ecs.AssignPublicIpEnabled {
		return ecs.AssignPublicIpEnabled
	}
	return ecs.AssignPublicIpDisabled
}
