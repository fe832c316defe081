package helpers

import (
	"github.com/spf13/cobra"

	"github.com/zinc-sig/specter/cmd/config"
)

// SetupTestFlags adds the test definition flags to a command
func SetupTestFlags(cmd *cobra.Command, flags *config.TestFlags) {
	cmd.Flags().StringVarP(&flags.Name, "test-name", "n", "", "Name of the test (TEST-NAME)")
	cmd.Flags().StringVarP(&flags.Command, "command", "c", "", "Shell command to judge (COMMAND)")
	cmd.Flags().StringVarP(&flags.SetupCommand, "setup-command", "s", "", "Shell command run before the judged command (SETUP-COMMAND)")
	cmd.Flags().StringVarP(&flags.Timeout, "timeout", "t", "", "Time budget per command in minutes, fractions allowed (TIMEOUT)")
	cmd.Flags().StringVar(&flags.MaxScore, "max-score", "", "Score awarded when the test passes (MAX-SCORE)")
	cmd.Flags().StringVar(&flags.ConfigFile, "config", "", "Path to a TOML file with test settings")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Path to a dotenv file with INPUT_* settings")
}

// SetupCommonFlags adds commonly used flags to a command
func SetupCommonFlags(cmd *cobra.Command, flags *config.CommonFlags) {
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Show execution details and command output on stderr")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the resolved test without running it")
	cmd.Flags().StringVar(&flags.Format, "format", FormatActions, "Result format on stdout: actions or json")
	cmd.Flags().StringVar(&flags.Dir, "dir", "", "Working directory for the commands")
}

// SetupUploadFlags adds upload-related flags to a command
func SetupUploadFlags(cmd *cobra.Command, cfg *config.UploadConfig) {
	cmd.Flags().StringVar(&cfg.Provider, "upload-provider", "", "Upload provider type (e.g., minio)")
	cmd.Flags().StringVar(&cfg.Config, "upload-config", "", "Upload configuration as JSON string")
	cmd.Flags().StringArrayVar(&cfg.ConfigKV, "upload-config-kv", nil, "Upload config key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&cfg.ConfigFile, "upload-config-file", "", "Path to JSON or TOML file containing upload configuration")
}

// SetupWebhookFlags adds webhook-related flags to a command
func SetupWebhookFlags(cmd *cobra.Command, cfg *config.WebhookConfig) {
	cmd.Flags().StringVar(&cfg.URL, "webhook-url", "", "Webhook URL to send results to")
	cmd.Flags().StringVar(&cfg.Method, "webhook-method", "", "HTTP method to use (default POST)")
	cmd.Flags().StringVar(&cfg.AuthType, "webhook-auth-type", "", "Authentication type: none, bearer, api-key")
	cmd.Flags().StringVar(&cfg.AuthToken, "webhook-auth-token", "", "Authentication token (use with --webhook-auth-type)")
	cmd.Flags().IntVar(&cfg.Retries, "webhook-retries", -1, "Maximum webhook retry attempts (default 3, 0 = no retries)")
	cmd.Flags().StringVar(&cfg.RetryDelay, "webhook-retry-delay", "", "Initial delay between webhook retries (default 1s)")
	cmd.Flags().StringVar(&cfg.Timeout, "webhook-timeout", "", "Total timeout for webhook including retries (default 30s)")

	cmd.Flags().StringVar(&cfg.Config, "webhook-config", "", "Webhook configuration as JSON string")
	cmd.Flags().StringArrayVar(&cfg.ConfigKV, "webhook-config-kv", nil, "Webhook config key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&cfg.ConfigFile, "webhook-config-file", "", "Path to JSON or TOML file containing webhook configuration")
}

// SetupQueueFlags adds message bus sink flags to a command
func SetupQueueFlags(cmd *cobra.Command, cfg *config.QueueConfig) {
	cmd.Flags().StringVar(&cfg.NATSURL, "nats-url", "", "NATS server URL to publish results to")
	cmd.Flags().StringVar(&cfg.NATSSubject, "nats-subject", "specter.results", "NATS subject for results")
	cmd.Flags().StringVar(&cfg.SQSQueueURL, "sqs-queue-url", "", "SQS queue URL to send results to")
	cmd.Flags().StringVar(&cfg.SQSRegion, "sqs-region", "", "AWS region of the SQS queue")
}
