package resend

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with envconfig.
type Config struct {
	APIKey string `envconfig:"RESEND_API_KEY"`
}
