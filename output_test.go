package runner

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/stretchr/testify/assert"
)

func TestMigrateResults(t *testing.T) {
	now := time.Now()
	task := stoppedTask(aws.Int64(0))
	task.CreatedAt = aws.Time(now)
	task.StoppedAt = aws.Time(now)

	output := migrateResults(testMigrateConfig(), now, now, aws.String("medic-api-service:7"), task, nil)

	assert.Equal(t, int64(0), aws.Int64Value(output.ExitCode))
	assert.Equal(t, "medic-api-service:7", output.TaskDefinitionArn)
	assert.Equal(t, aws.StringValue(task.TaskArn), output.TaskArn)
	assert.NotNil(t, output.Timeline)
	assert.Equal(t, "---", output.Timeline.TaskStartedAt)
}

func TestMigrateResultsOnFailure(t *testing.T) {
	now := time.Now()
	output := migrateResults(testMigrateConfig(), now, now, aws.String("medic-api-service:7"),
		&ecs.Task{StoppedReason: aws.String("Essential container in task exited")},
		&MigrationFailure{ExitCode: 1})

	assert.Equal(t, int64(1), aws.Int64Value(output.ExitCode))
	assert.Equal(t, "Essential container in task exited", output.StoppedReason)
}
