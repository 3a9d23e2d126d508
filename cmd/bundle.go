package cmd

import (
	"fmt"

	"pak-index/core/bundle"
	"pak-index/core/config"
	"pak-index/core/logger"
	"pak-index/core/source"
	"pak-index/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compressionFlag string
	keyFlag         string
	publishFlag     bool
)

// bundleCmd seals a manifest of decoded files into a package.
var bundleCmd = &cobra.Command{
	Use:   "bundle <manifest.json> <out>",
	Short: "Seal decoded files into a package",
	Long: `Reads a JSON manifest of decoded files and writes a sealed package the index can open.
The key defaults to the configured main key. With --publish the package is uploaded
to the configured bucket.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		c, err := bundle.ParseCompression(compressionFlag)
		if err != nil {
			return err
		}
		key := keyFlag
		if key == "" {
			key = cfg.Keys.MainKey
		}

		files, err := bundle.LoadManifest(args[0])
		if err != nil {
			return err
		}
		if err := bundle.WriteFile(args[1], key, c, files); err != nil {
			return err
		}
		logg.Info("Package sealed",
			zap.String("path", args[1]),
			zap.Int("files", len(files)),
			zap.String("compression", c.String()),
		)

		if !publishFlag {
			return nil
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		objectKey, err := source.NewMirror(client, cfg.Storage, cfg.Index.Path, cfg.Index.Pattern, logg).Publish(ctx, args[1])
		if err != nil {
			return err
		}
		logg.Info("Package published", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", objectKey))
		return nil
	},
}

func init() {
	bundleCmd.Flags().StringVar(&compressionFlag, "compression", "zstd", "Body compression (none, lz4, zstd)")
	bundleCmd.Flags().StringVar(&keyFlag, "key", "", "Hex key sealing the package (defaults to keys.main_key)")
	bundleCmd.Flags().BoolVar(&publishFlag, "publish", false, "Upload the package to the configured bucket")
	RootCmd.AddCommand(bundleCmd)
}
