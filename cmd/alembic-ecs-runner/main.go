package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/aws/aws-sdk-go/aws"
	runner "github.com/medic-chat/alembic-ecs-runner"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
	cli "gopkg.in/alecthomas/kingpin.v2"
)

// for compile flags
var (
	version = "dev"
	commit  string
	date    string
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			debug.PrintStack()
			log.Errors.Fatal(err)
		}
	}()

	app := cli.New("alembic-ecs-runner", "Runs Alembic schema migrations as a one-off Fargate task "+
		"in the live service's network. Aborting this command does not stop a task that is already running.")
	if len(version) > 0 && len(date) > 0 {
		app.Version(fmt.Sprintf("%s-%s (built at %s)", version, commit, date))
	} else {
		app.Version(version)
	}
	// global flags
	awsConf := &conf.AwsConfig{}
	awsConf.AccessKey = app.Flag("access_key", "AWS access key ID.").
		Short('a').Envar("AWS_ACCESS_KEY_ID").String()
	awsConf.SecretKey = app.Flag("secret_key", "AWS secret access key.").
		Short('s').Envar("AWS_SECRET_ACCESS_KEY").String()
	awsConf.Profile = app.Flag("profile", "AWS profile name.").
		Envar("AWS_PROFILE").String()
	awsConf.AssumeRole = app.Flag("assume_role", "IAM role ARN to be assumed.").
		Envar("AWS_ASSUME_ROLE").String()
	awsConf.MfaSerialNumber = app.Flag("mfa_serial", "MFA device serial number.").
		Envar("AWS_MFA_SERIAL_NUMBER").String()
	awsConf.MfaToken = app.Flag("mfa_token", "MFA one-time token.").
		Envar("AWS_MFA_TOKEN").String()
	awsConf.Region = app.Flag("region", "AWS region.").
		Short('r').Envar("AWS_REGION").Default("ap-northeast-2").String()
	debugMode := app.Flag("debug", "Print every request and response as JSON.").
		Envar("DEBUG").Bool()

	// commands
	migrate := app.Command("migrate", "Run 'alembic upgrade head && alembic current' remotely.").Default()
	cluster := migrate.Flag("cluster", "Amazon ECS cluster name.").
		Short('c').Envar("ECS_CLUSTER").Default("medic-gpu-cluster").String()
	family := migrate.Flag("family", "Task definition family prefix of the API service.").
		Short('f').Envar("SERVICE_FAMILY").Default("medic-api-service").String()
	service := migrate.Flag("service", "ECS service name; defaults to the family prefix.").
		Envar("SERVICE_NAME").String()
	container := migrate.Flag("container", "Container whose command is overridden.").
		Envar("CONTAINER_NAME").Default("medic-api-container").String()

	switch cli.MustParse(app.Parse(os.Args[1:])) {
	case migrate.FullCommand():
		if aws.StringValue(service) == "" {
			service = family
		}
		migrateConf := &conf.MigrateConfig{
			Aws: awsConf,
			Common: &conf.CommonConfig{
				AppVersion:  version,
				EcsCluster:  cluster,
				IsDebugMode: aws.BoolValue(debugMode),
			},
			TaskDefFamily: family,
			ServiceName:   service,
			ContainerName: container,
		}
		ctx, stop := interruptContext()
		output, err := runner.Migrate(ctx, migrateConf)
		stop()
		if err != nil {
			log.Errors.Printf("migration aborted: %v", err)
		}
		os.Exit(int(aws.Int64Value(output.ExitCode)))
	}
}

// interruptContext cancels on Ctrl-C or SIGTERM so the local wait aborts.
// A task that is already running remotely keeps running.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
