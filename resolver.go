package runner

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ecs"
	"github.com/docker/distribution/reference"
	"github.com/medic-chat/alembic-ecs-runner/conf"
	awsutil "github.com/medic-chat/alembic-ecs-runner/internal/aws"
	"github.com/medic-chat/alembic-ecs-runner/internal/log"
)

// NetworkPlacement is the network context copied from the live service onto
// the one-off migration task, so it can reach the same database
type NetworkPlacement struct {
	Subnets        []*string
	SecurityGroups []*string
	AssignPublicIP *string
}

func resolveTaskDefinition(ctx context.Context, sess *session.Session, conf *conf.MigrateConfig) (*string, error) {
	out, err := awsutil.ListTaskDefinitions(ctx, sess, listTaskDefinitionsInput(conf.TaskDefFamily))
	if err != nil {
		return nil, &ResolutionError{Op: "task definition", Err: err}
	}
	return latestTaskDefinition(out.TaskDefinitionArns, conf.TaskDefFamily)
}

// listTaskDefinitionsInput asks for ACTIVE revisions newest first, so the
// first listed entry is the latest
func listTaskDefinitionsInput(familyPrefix *string) *ecs.ListTaskDefinitionsInput {
	return &ecs.ListTaskDefinitionsInput{
		FamilyPrefix: familyPrefix,
		Status:       aws.String(ecs.TaskDefinitionStatusActive),
		Sort:         aws.String(ecs.SortOrderDesc),
		MaxResults:   aws.Int64(1),
	}
}

func latestTaskDefinition(taskDefs []*string, familyPrefix *string) (*string, error) {
	if len(taskDefs) == 0 {
		return nil, &ResolutionError{Op: "task definition", Err: fmt.Errorf(
			"no active revision in family %s",
			aws.StringValue(familyPrefix),
		)}
	}
	return taskDefs[0], nil
}

func resolveNetworkPlacement(ctx context.Context, sess *session.Session, conf *conf.MigrateConfig) (*NetworkPlacement, error) {
	service, err := awsutil.DescribeService(ctx, sess, conf.Common.EcsCluster, conf.ServiceName)
	if err != nil {
		return nil, &ResolutionError{Op: "network placement", Err: err}
	}
	return placementFromService(service, conf.ServiceName)
}

func placementFromService(service *ecs.Service, serviceName *string) (*NetworkPlacement, error) {
	if service == nil {
		return nil, &ResolutionError{Op: "network placement", Err: fmt.Errorf(
			"service %s not found",
			aws.StringValue(serviceName),
		)}
	}
	if service.NetworkConfiguration == nil || service.NetworkConfiguration.AwsvpcConfiguration == nil {
		return nil, &ResolutionError{Op: "network placement", Err: fmt.Errorf(
			"service %s has no awsvpc network configuration",
			aws.StringValue(serviceName),
		)}
	}
	vpcConfig := service.NetworkConfiguration.AwsvpcConfiguration
	if len(vpcConfig.Subnets) == 0 {
		return nil, &ResolutionError{Op: "network placement", Err: fmt.Errorf(
			"service %s exposes no subnets",
			aws.StringValue(serviceName),
		)}
	}
	if len(vpcConfig.SecurityGroups) == 0 {
		log.Errors.Printf(
			"warning: service %s exposes no security groups, proceeding without",
			aws.StringValue(serviceName),
		)
	}
	return &NetworkPlacement{
		Subnets:        vpcConfig.Subnets,
		SecurityGroups: vpcConfig.SecurityGroups,
		AssignPublicIP: vpcConfig.AssignPublicIp,
	}, nil
}

// verifyContainer checks the override target exists in the resolved revision
// before anything is submitted, and reports which image will run
func verifyContainer(ctx context.Context, sess *session.Session, taskDef, containerName *string) error {
	def, err := awsutil.DescribeTaskDefinition(ctx, sess, taskDef)
	if err != nil {
		return &ResolutionError{Op: "container", Err: err}
	}
	for _, container := range def.ContainerDefinitions {
		if aws.StringValue(container.Name) != aws.StringValue(containerName) {
			continue
		}
		if image, e := describeImageName(aws.StringValue(container.Image)); e == nil {
			log.Logger.Printf("migration will run in container %s (%s)",
				aws.StringValue(containerName), image)
		}
		return nil
	}
	return &ResolutionError{Op: "container", Err: fmt.Errorf(
		"task definition %s has no container named %s",
		aws.StringValue(taskDef),
		aws.StringValue(containerName),
	)}
}

func describeImageName(value string) (string, error) {
	ref, err := reference.Parse(value)
	if err != nil {
		return "", err
	}
	imageHost := ""
	imageName := ""
	if candidate, ok := ref.(reference.Named); ok {
		imageHost, imageName = reference.SplitHostname(candidate)
	}
	imageTag := ":latest"
	if candidate, ok := ref.(reference.Tagged); ok {
		imageTag = ":" + candidate.Tag()
	}
	if candidate, ok := ref.(reference.Digested); ok {
		digest := candidate.Digest()
		if digest.Validate() == nil {
			imageTag = "@" + digest.String()
		}
	}
	if imageHost == "" {
		return fmt.Sprintf("%s%s", imageName, imageTag), nil
	}
	return fmt.Sprintf("%s/%s%s", imageHost, imageName, imageTag), nil
}
