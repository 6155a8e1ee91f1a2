package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/engine"
	"github.com/abhisek/factforge/internal/generator"
	"github.com/abhisek/factforge/internal/logger"
	"github.com/abhisek/factforge/internal/policy"
	"github.com/abhisek/factforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "factforge",
	Short: "Multiply base facts into exam question banks",
	Long: "factforge turns one authored base fact into a deduplicated batch of exam\n" +
		"questions across ten archetypes, with explanations and quality scores.",
	SilenceUsage: true,
}

// Execute runs the root command, cancelling in-flight work on Ctrl+C.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the run audit database (overrides FACTFORGE_DB)")
	rootCmd.PersistentFlags().String("policy", "", "Path to a tuning policy YAML file (overrides FACTFORGE_POLICY)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev or prod (overrides FACTFORGE_LOG_MODE, default prod)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagOrEnv returns the flag value when set, then the env var, then def.
func flagOrEnv(cmd *cobra.Command, flag, env, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FACTFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadPolicy returns the override named by --policy or FACTFORGE_POLICY,
// or the embedded default.
func loadPolicy(cmd *cobra.Command) (*policy.Policy, error) {
	path := flagOrEnv(cmd, "policy", "FACTFORGE_POLICY", "")
	if path == "" {
		return policy.Default(), nil
	}
	p, err := policy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	return p, nil
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	log, err := logger.New(flagOrEnv(cmd, "log-mode", "FACTFORGE_LOG_MODE", "prod"))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// addEngineFlags registers the flags newEngine reads.
func addEngineFlags(c *cobra.Command) {
	c.Flags().Uint64("seed", 0, "Random seed; the same seed reproduces the same batch")
	c.Flags().Int("concurrency", engine.DefaultConcurrency, "Maximum concurrent generator calls")
	c.Flags().Duration("timeout", engine.DefaultCallTimeout, "Per-call generator timeout")
}

func newEngine(cmd *cobra.Command, p *policy.Policy, log *logger.Logger) *engine.Engine {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithConcurrency(concurrency),
		engine.WithCallTimeout(timeout),
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, engine.WithSeed(seed))
	}
	return engine.New(p, generator.NewRegistry(p), opts...)
}
