package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/chrisdamba/fooddash/internal/repositories/postgres"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the Postgres schema and load the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()

		pool, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}

		restaurants := postgres.NewRestaurantRepository(pool)
		items := postgres.NewMenuItemRepository(pool)
		if seedReset {
			if err := items.DeleteAll(ctx); err != nil {
				return err
			}
			if err := restaurants.DeleteAll(ctx); err != nil {
				return err
			}
			log.Println("catalog tables cleared")
		}

		if err := seedCatalog(ctx, cfg, restaurants, items); err != nil {
			return err
		}
		count, err := restaurants.Count(ctx)
		if err != nil {
			return err
		}
		log.Printf("catalog ready restaurants=%d", count)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Delete the existing catalog before seeding")
	rootCmd.AddCommand(seedCmd)
}
