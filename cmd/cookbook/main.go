package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"cookbook-go/internal/app"
	"cookbook-go/internal/config"
	"cookbook-go/internal/encryption"

	"github.com/spf13/cobra"
)

var (
	verbose bool

	// prompter is shared so piped answers are read from one buffer.
	prompter = app.NewPrompter(os.Stderr)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a CookbookApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddRecipe", "Login").
func newApp(cmd *cobra.Command, operation string) (*app.CookbookApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewCookbookApp(cmd.Context(), cfg, operation, app.Options{
		Passphrase: prompter.Passphrase,
		Verbose:    verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "cookbook",
	Short:        "Social recipe book",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		storageType, _ := cmd.Flags().GetString("storage")
		encryptionType, _ := cmd.Flags().GetString("encryption")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		cfg.Storage.Type = storageType
		if storageType == "sqlite" {
			cfg.Storage.DataDir = cfg.Storage.FSRoot
			cfg.Storage.FSRoot = ""
		}
		cfg.Encryption.Type = encryptionType

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return err
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)

		if enc != nil && !enc.IsConfigured() {
			passphrase, err := prompter.NewPassphrase()
			if err != nil {
				return fmt.Errorf("reading passphrase: %w", err)
			}
			if err := enc.Setup(passphrase); err != nil {
				return fmt.Errorf("generating keys: %w", err)
			}
			fmt.Printf("Keys written to %s\n", cfg.Encryption.PrivateKeyPath)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Storage:    %s\n", cfg.Storage.Type)
		switch cfg.Storage.Type {
		case "filesystem":
			fmt.Printf("  fs_root:  %s\n", cfg.Storage.FSRoot)
		case "sqlite":
			fmt.Printf("  data_dir: %s\n", cfg.Storage.DataDir)
		case "s3":
			fmt.Printf("  bucket:   %s\n", cfg.Storage.S3Bucket)
			fmt.Printf("  prefix:   %s\n", cfg.Storage.S3Prefix)
			fmt.Printf("  region:   %s\n", cfg.Storage.S3Region)
			if cfg.Storage.S3Endpoint != "" {
				fmt.Printf("  endpoint: %s\n", cfg.Storage.S3Endpoint)
			}
		}
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		fmt.Printf("Friendship: %s\n", friendshipMode(cfg.Social.AsymmetricFriendship))
		return nil
	},
}

func friendshipMode(asymmetric bool) string {
	if asymmetric {
		return "asymmetric"
	}
	return "symmetric"
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database",
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup DEST",
	Short: "Write a snapshot of the sqlite database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "BackupDatabase")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.BackupDatabase(args[0]); err != nil {
			return a.Record(err)
		}
		fmt.Printf("Database written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Copy log output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().String("storage", "filesystem", "Storage backend: memory, filesystem, sqlite or s3")
	configInitCmd.Flags().String("encryption", "none", "Encryption at rest: none or age")

	// db subcommands
	dbCmd.AddCommand(dbBackupCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
}
