package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tgbot/internal/driver/telegram"
	"tgbot/internal/kernel"
	"tgbot/pkg/tgbot"

	"github.com/spf13/cobra"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// newRootCommand builds the tgdecode command over the given streams.
func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tgdecode",
		Short: "Decode Telegram Bot API updates into typed messages",
		Long: "tgdecode reads raw Bot API updates or messages, decodes them concurrently " +
			"and prints one JSON summary per input object.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(stderr, cfg.Log)

			input := stdin
			if !cfg.Input.readsStdin() {
				file, err := os.Open(cfg.Input.Path)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer file.Close()
				input = file
			}

			err = decodeStream(cmd.Context(), cfg, input, stdout, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Config file path (default ./tgdecode.{yaml,json,toml} when present).")
	flags.String("input", stdinPath, "Input file, - for stdin.")
	flags.String("format", string(telegram.FormatLines), "Input framing: lines|updates.")
	flags.String("payload", string(telegram.PayloadUpdate), "Raw object kind: update|message.")
	flags.Int("max-line-size", 0, "Maximum input line size in bytes (0 uses the default).")
	flags.Int("workers", 4, "Concurrent decode workers.")
	flags.Int("max-depth", tgbot.DefaultMaxDepth, "Maximum nesting of embedded messages.")
	flags.String("on-error", string(kernel.ErrorPolicySkip), "Decode failure policy: skip|abort.")
	flags.Int("batch-size", 100, "Raw updates per decode batch.")
	flags.String("log-level", "info", "Log level: debug|info|warn|error.")
	flags.String("log-format", "json", "Log format: json|text.")

	return cmd
}

// decodeStream reads raw updates from input in batches, decodes each batch on
// the pipeline and renders every result to out in input order.
func decodeStream(ctx context.Context, cfg Config, input io.Reader, out io.Writer, logger *slog.Logger) error {
	runtime, err := telegram.BuildRuntime(input, cfg.runtimeConfig(), logger)
	if err != nil {
		return fmt.Errorf("build telegram runtime: %w", err)
	}

	pipeline, err := kernel.NewPipeline(
		runtime.Decoder.Decode,
		kernel.WithWorkers(cfg.Decode.Workers),
		kernel.WithErrorPolicy(kernel.ErrorPolicy(cfg.Decode.OnError)),
		kernel.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("new decode pipeline: %w", err)
	}

	render := newRenderer(out)
	var decoded, failed int
	err = runtime.Driver.Start(ctx, func(ctx context.Context, raws []telegram.RawUpdate) error {
		payloads := make([][]byte, len(raws))
		for index, raw := range raws {
			payloads[index] = raw.Data
		}

		batch, runErr := pipeline.Run(ctx, payloads)
		if batch != nil {
			decoded += batch.Decoded
			failed += batch.Failed
			for index, result := range batch.Results {
				if err := render.Render(raws[index].Sequence, result); err != nil {
					return err
				}
			}
		}

		return runErr
	})
	logger.InfoContext(ctx, "decode finished", "decoded", decoded, "failed", failed)
	if err != nil {
		return fmt.Errorf("decode stream: %w", err)
	}

	return nil
}
