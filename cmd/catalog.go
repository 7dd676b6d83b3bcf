package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careercompass/internal/logger"
	"github.com/spigell/careercompass/internal/recommend"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the project catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the project catalog and report the first malformed entry",
	Run: func(_ *cobra.Command, _ []string) {
		withCatalog(func(log *zap.Logger, config *Config, catalog *recommend.Catalog) {
			counts := catalog.CountByLevel()
			log.Info("catalog is valid",
				zap.String(logger.FieldCatalog, config.CatalogSource()),
				zap.Int("projects", catalog.Len()),
				zap.Int(string(recommend.LevelBeginner), counts[recommend.LevelBeginner]),
				zap.Int(string(recommend.LevelIntermediate), counts[recommend.LevelIntermediate]),
				zap.Int(string(recommend.LevelAdvanced), counts[recommend.LevelAdvanced]),
			)
		})
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the project ideas in catalog order",
	Run: func(cmd *cobra.Command, _ []string) {
		withCatalog(func(log *zap.Logger, _ *Config, catalog *recommend.Catalog) {
			if err := listCatalog(cmd.OutOrStdout(), catalog); err != nil {
				log.Fatal("printing catalog", zap.Error(err))
			}
		})
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd, catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}

func withCatalog(fn func(*zap.Logger, *Config, *recommend.Catalog)) {
	logger, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	catalog, err := config.LoadCatalog(config.Dictionary())
	if err != nil {
		logger.Fatal("loading project catalog", zap.Error(err))
	}

	fn(logger, config, catalog)
}

func listCatalog(out io.Writer, catalog *recommend.Catalog) error {
	for i, p := range catalog.Ideas() {
		if _, err := fmt.Fprintf(out, "%2d. %-40s %-18s %-12s %s\n",
			i+1, p.Title, p.Domain, p.Level, strings.Join(p.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}
