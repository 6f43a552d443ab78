package runner

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
)

// Output is the result of this application
type Output struct {
	ExitCode          *int64
	RequestID         string          `json:"RequestID,omitempty"`
	TaskArn           string          `json:"TaskArn,omitempty"`
	TaskDefinitionArn string          `json:"TaskDefinitionArn,omitempty"`
	StopCode          string          `json:"TaskStopCode,omitempty"`
	StoppedReason     string          `json:"TaskStoppedReason,omitempty"`
	Timeline          *OutputTimeline `json:"Timeline,omitempty"`
}

// OutputTimeline is the series of the events of a single run
type OutputTimeline struct {
	AppStartedAt           string `json:"0,omitempty"`
	AppLaunchedTaskAt      string `json:"1,omitempty"`
	TaskCreatedAt          string `json:"2,omitempty"`
	TaskPullStartedAt      string `json:"3,omitempty"`
	TaskPullStoppedAt      string `json:"4,omitempty"`
	TaskStartedAt          string `json:"5,omitempty"`
	TaskExecutionStoppedAt string `json:"6,omitempty"`
	TaskStoppedAt          string `json:"7,omitempty"`
	AppFinishedAt          string `json:"8,omitempty"`
}

func migrateResults(conf *conf.MigrateConfig, startedAt, launchedAt time.Time, taskDef *string, task *ecs.Task, err error) *Output {
	result := &Output{
		ExitCode:          ExitCode(err),
		RequestID:         requestID,
		TaskDefinitionArn: aws.StringValue(taskDef),
	}
	if task != nil {
		result.TaskArn = aws.StringValue(task.TaskArn)
		result.StopCode = aws.StringValue(task.StopCode)
		result.StoppedReason = aws.StringValue(task.StoppedReason)
		result.Timeline = &OutputTimeline{
			AppStartedAt:           rfc3339(startedAt),
			AppLaunchedTaskAt:      rfc3339(launchedAt),
			TaskCreatedAt:          toStr(task.CreatedAt),
			TaskPullStartedAt:      toStr(task.PullStartedAt),
			TaskPullStoppedAt:      toStr(task.PullStoppedAt),
			TaskStartedAt:          toStr(task.StartedAt),
			TaskExecutionStoppedAt: toStr(task.ExecutionStoppedAt),
			TaskStoppedAt:          toStr(task.StoppedAt),
			AppFinishedAt:          rfc3339(time.Now()),
		}
	}
	if conf.Common.IsDebugMode {
		log.PrintJSON(result)
	}
	return result
}

func toStr(t *time.Time) string {
	if t == nil {
		return "---"
	}
	return rfc3339(aws.TimeValue(t))
}

func rfc3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
