package conf

// AwsConfig is set of AWS configurations
type AwsConfig struct {
	Region          *string
	AccessKey       *string
	SecretKey       *string
	Profile         *string
	AssumeRole      *string
	MfaSerialNumber *string
	MfaToken        *string
}

// CommonConfig is set of common configurations
type CommonConfig struct {
	AppVersion  string
	EcsCluster  *string
	IsDebugMode bool
}

// MigrateConfig is set of configurations for running a migration task
type MigrateConfig struct {
	Aws           *AwsConfig
	Common        *CommonConfig
	TaskDefFamily *string
	ServiceName   *string
	ContainerName *string
}
