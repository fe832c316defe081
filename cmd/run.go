package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zinc-sig/specter/cmd/config"
	"github.com/zinc-sig/specter/cmd/helpers"
	"github.com/zinc-sig/specter/internal/judge"
	"github.com/zinc-sig/specter/internal/report"
	"github.com/zinc-sig/specter/internal/runner"
	"github.com/zinc-sig/specter/internal/upload"
)

type runOptions struct {
	test    config.TestFlags
	common  config.CommonFlags
	upload  config.UploadConfig
	webhook config.WebhookConfig
	queue   config.QueueConfig
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Judge a single test command",
		Long: `Run the setup command (if any) and the test command, each under the
configured timeout, and report the result.

A setup command that fails or times out fails the test and the test command
is not run. The result is printed on stdout as a workflow command carrying
base64 encoded JSON (--format actions) or as plain JSON (--format json).`,
		Example: `  specter run -n "Test 1" -c "echo Hello, World!" -t 5
  specter run -n build -s "make deps" -c "make test" -t 0.5 --max-score 10
  INPUT_TEST-NAME=t INPUT_COMMAND="go test ./..." INPUT_TIMEOUT=2 specter run --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts)
		},
	}

	helpers.SetupTestFlags(cmd, &opts.test)
	helpers.SetupCommonFlags(cmd, &opts.common)
	helpers.SetupUploadFlags(cmd, &opts.upload)
	helpers.SetupWebhookFlags(cmd, &opts.webhook)
	helpers.SetupQueueFlags(cmd, &opts.queue)

	return cmd
}

func runCommand(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := helpers.NewLogger(stderr, opts.common.Verbose)

	cfg, err := helpers.LoadTestConfig(&opts.test)
	if err != nil {
		return err
	}

	primary, err := helpers.PrimarySink(opts.common.Format, stdout)
	if err != nil {
		return err
	}

	if opts.common.DryRun {
		judge.PrintPreExecution(stderr, cfg, true)
		helpers.PrintConfigInfo(stderr, cfg)
		return nil
	}

	provider, uploadConf, err := helpers.SetupUploadProvider(ctx, &opts.upload)
	if err != nil {
		return err
	}
	if provider != nil {
		helpers.LogUploadInfo(log, provider, uploadConf)
	}

	var sinks []report.Sink
	webhookSink, err := helpers.SetupWebhookSink(&opts.webhook, log)
	if err != nil {
		return err
	}
	if webhookSink != nil {
		sinks = append(sinks, webhookSink)
	}
	queueSinks, err := helpers.SetupQueueSinks(ctx, &opts.queue)
	if err != nil {
		return err
	}
	sinks = append(sinks, queueSinks...)

	r := &runner.Runner{Dir: opts.common.Dir}
	if opts.common.Verbose {
		judge.PrintPreExecution(stderr, cfg, false)
		r.Echo = stderr
	}

	log.Debug("judging test", "name", cfg.Name, "timeout", cfg.Timeout, "setup", cfg.HasSetup())
	verdict := judge.Run(ctx, cfg, r)
	result := verdict.Result()
	log.Debug("test judged", "name", result.Name, "status", result.Status, "score", result.Score)

	if opts.common.Verbose {
		judge.PrintPostExecution(stderr, verdict)
	}

	// The pipeline reads stdout; it must not wait on slow secondary sinks.
	primaryErr := primary.Publish(ctx, verdict.Summary)

	// Upload and secondary sink failures are logged, the verdict stands.
	_ = helpers.HandleUploads(ctx, provider, &upload.Artifacts{
		RunID:      uuid.NewString(),
		Summary:    verdict.Summary,
		Transcript: verdict.Transcript(),
	}, log)
	_ = report.PublishAll(ctx, log, verdict.Summary, sinks...)

	return primaryErr
}
