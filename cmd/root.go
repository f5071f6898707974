package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chrisdamba/fooddash/internal/models"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fooddash",
	Short: "Food delivery backend with a simulated order lifecycle",
	Long: `fooddash serves a restaurant catalog, customizable menus, carts and orders over HTTP.
Placed orders move through placed, preparing, out for delivery, reached and delivered
on a fixed schedule, and every change is published to the configured event output.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.PersistentFlags().Int64("seed", 42, "Random seed for generated restaurants")
	rootCmd.PersistentFlags().Int("generated-restaurants", 0, "Number of extra restaurants to generate on top of the built-in catalog")
	rootCmd.PersistentFlags().Bool("veg", false, "Start in veg mode")
	rootCmd.PersistentFlags().String("catalog-store", "memory", "Catalog storage: memory or postgres")
	rootCmd.PersistentFlags().String("order-store", "memory", "Order storage: memory, postgres or redis")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Publish order events to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().String("output-path", "", "Directory for file event output (if not using a broker)")
	rootCmd.PersistentFlags().String("output-format", "json", "File event output format: json, csv or parquet")

	bindFlag("seed", "seed")
	bindFlag("generated_restaurants", "generated-restaurants")
	bindFlag("preferences.veg_mode", "veg")
	bindFlag("catalog_store", "catalog-store")
	bindFlag("order_store", "order-store")
	bindFlag("kafka_enabled", "kafka-enabled")
	bindFlag("kafka_broker_list", "kafka-broker-list")
	bindFlag("output_path", "output-path")
	bindFlag("output_format", "output-format")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Fatalf("bind flag %s: %v", flag, err)
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
