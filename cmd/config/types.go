package config

// TestFlags holds the test settings given on the command line. Empty
// values fall through to the environment and the config file.
type TestFlags struct {
	Name         string
	Command      string
	SetupCommand string
	Timeout      string // minutes
	MaxScore     string
	ConfigFile   string
	EnvFile      string
}

// CommonFlags holds flags shared by commands
type CommonFlags struct {
	Verbose bool
	DryRun  bool
	Format  string // actions or json
	Dir     string
}

// UploadConfig holds upload-related flags
type UploadConfig struct {
	Provider   string
	Config     string
	ConfigKV   []string
	ConfigFile string
}

// WebhookConfig holds webhook-related flags
type WebhookConfig struct {
	// Direct configuration flags
	URL        string
	Method     string
	AuthType   string
	AuthToken  string
	Timeout    string
	Retries    int
	RetryDelay string

	// Alternative configuration methods
	Config     string   // JSON string configuration
	ConfigKV   []string // Key-value pairs
	ConfigFile string   // Path to JSON or TOML config file
}

// QueueConfig holds message bus sink flags
type QueueConfig struct {
	NATSURL     string
	NATSSubject string
	SQSQueueURL string
	SQSRegion   string
}
