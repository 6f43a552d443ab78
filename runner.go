package runner

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	awsutil "github.com/medic-chat/alembic-ecs-runner/internal/aws"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
	"golang.org/x/sync/errgroup"
)

// requestID tags each run; it is set as the task's StartedBy marker so
// operators can tell this tool's one-off tasks from service-managed ones
var requestID string

func init() {
	requestID = uuid.New().String()
}

// Migrate runs the schema migration as a one-off task in the live service's
// network and blocks until the remote command exits. The returned Output
// always carries the process exit status; err describes what went wrong.
func Migrate(ctx context.Context, conf *conf.MigrateConfig) (*Output, error) {
	startedAt := time.Now()

	if conf.Common.IsDebugMode {
		log.PrintJSON(conf)
	}
	sess, err := awsutil.Session(conf.Aws)
	if err != nil {
		return &Output{ExitCode: exitWithError}, err
	}
	// Pre-flight discovery: both lookups are read-only and independent
	var taskDef *string
	var placement *NetworkPlacement
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		taskDef, err = resolveTaskDefinition(egctx, sess, conf)
		return err
	})
	eg.Go(func() (err error) {
		placement, err = resolveNetworkPlacement(egctx, sess, conf)
		return err
	})
	if err = eg.Wait(); err != nil {
		return &Output{ExitCode: ExitCode(err)}, err
	}
	log.Logger.Printf("resolved task definition %s", aws.StringValue(taskDef))
	if err = verifyContainer(ctx, sess, taskDef, conf.ContainerName); err != nil {
		return &Output{ExitCode: ExitCode(err)}, err
	}
	// Submit the one-off task
	task, err := launch(ctx, sess, conf, taskDef, placement)
	if err != nil {
		return &Output{ExitCode: ExitCode(err)}, err
	}
	launchedAt := time.Now()
	log.Logger.Printf("launched migration task %s, waiting for it to stop", aws.StringValue(task.TaskArn))

	// Block until the remote command exits; a local abort here does not
	// stop the remote task
	stopped, err := awaitCompletion(ctx, sess, conf, task.TaskArn)
	if stopped == nil {
		stopped = task
	}
	output := migrateResults(conf, startedAt, launchedAt, taskDef, stopped, err)
	if err != nil {
		return output, err
	}
	log.Logger.Printf("migration completed on task %s", aws.StringValue(stopped.TaskArn))
	return output, nil
}
