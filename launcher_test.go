package runner

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	"github.com/stretchr/testify/assert"
)

func testMigrateConfig() *conf.MigrateConfig {
	return &conf.MigrateConfig{
		Common: &conf.CommonConfig{
			EcsCluster: aws.String("medic-gpu-cluster"),
		},
		TaskDefFamily: aws.String("medic-api-service"),
		ServiceName:   aws.String("medic-api-service"),
		ContainerName: aws.String("medic-api-container"),
	}
}

func TestBuildRunTaskInput(t *testing.T) {
	placement := &NetworkPlacement{
		Subnets:        []*string{aws.String("subnet-a"), aws.String("subnet-b")},
		AssignPublicIP: aws.String("DISABLED"),
	}
	input := buildRunTaskInput(testMigrateConfig(), aws.String("medic-api-service:7"), placement)

	assert.Equal(t, "medic-gpu-cluster", aws.StringValue(input.Cluster))
	assert.Equal(t, "FARGATE", aws.StringValue(input.LaunchType))
	assert.Equal(t, "medic-api-service:7", aws.StringValue(input.TaskDefinition))
	assert.Equal(t, int64(1), aws.Int64Value(input.Count))

	vpcConfig := input.NetworkConfiguration.AwsvpcConfiguration
	assert.Equal(t, []*string{aws.String("subnet-a"), aws.String("subnet-b")}, vpcConfig.Subnets)
	assert.Nil(t, vpcConfig.SecurityGroups)
	assert.Equal(t, "DISABLED", aws.StringValue(vpcConfig.AssignPublicIp))

	overrides := input.Overrides.ContainerOverrides
	assert.Len(t, overrides, 1)
	assert.Equal(t, "medic-api-container", aws.StringValue(overrides[0].Name))
	assert.Equal(t, []*string{
		aws.String("bash"),
		aws.String("-lc"),
		aws.String("alembic upgrade head && alembic current"),
	}, overrides[0].Command)
}

func TestBuildRunTaskInputKeepsSecurityGroups(t *testing.T) {
	placement := &NetworkPlacement{
		Subnets:        []*string{aws.String("subnet-a")},
		SecurityGroups: []*string{aws.String("sg-1"), aws.String("sg-2")},
	}
	input := buildRunTaskInput(testMigrateConfig(), aws.String("medic-api-service:7"), placement)
	vpcConfig := input.NetworkConfiguration.AwsvpcConfiguration
	assert.Equal(t, []*string{aws.String("sg-1"), aws.String("sg-2")}, vpcConfig.SecurityGroups)
}

func TestNormalizePublicIP(t *testing.T) {
	assert.Equal(t, ecs.AssignPublicIpEnabled, normalizePublicIP(aws.String("ENABLED")))
	assert.Equal(t, ecs.AssignPublicIpDisabled, normalizePublicIP(aws.String("DISABLED")))
	assert.Equal(t, ecs.AssignPublicIpDisabled, normalizePublicIP(aws.String("enabled")))
	assert.Equal(t, ecs.AssignPublicIpDisabled, normalizePublicIP(aws.String("unexpected")))
	assert.Equal(t, ecs.AssignPublicIpDisabled, normalizePublicIP(nil))
}
