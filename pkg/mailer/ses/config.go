package ses

// Config holds Amazon SES provider configuration.
// Embed this in your app config for env parsing with envconfig.
type Config struct {
	Region          string `envconfig:"AWS_REGION" required:"true"`
	Profile         string `envconfig:"AWS_PROFILE"`
	CredentialsFile string `envconfig:"AWS_SHARED_CREDENTIALS_FILE"`

	// Static credentials. Leave empty to use the profile or the default chain.
	AccessKeyID     string `envconfig:"SES_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SES_SECRET_ACCESS_KEY"`
	SessionToken    string `envconfig:"SES_SESSION_TOKEN"`

	Endpoint         string `envconfig:"SES_ENDPOINT"`
	ConfigurationSet string `envconfig:"SES_CONFIGURATION_SET"`
	SourceArn        string `envconfig:"SES_SOURCE_ARN"`
}
