package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/pricing"
	"github.com/chrisdamba/fooddash/internal/tracking"
)

var (
	trackPayment string
	trackAddress string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Place a demo order and follow it until it is delivered",
	Long: `track fills a cart at Maiz Mexican Kitchen with a burrito bowl with guacamole and
a side of chips, checks it out and renders each status change as it happens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		c := a.carts.Create()
		if _, err := a.carts.Add(ctx, c.ID, "107", "m1", pricing.Selections{"cg3": {"o5"}}, 1); err != nil {
			return err
		}
		if _, err := a.carts.Add(ctx, c.ID, "107", "m6", nil, 1); err != nil {
			return err
		}
		checkout, err := a.carts.Checkout(c.ID, trackPayment, trackAddress)
		if err != nil {
			return err
		}
		order, err := a.orders.PlaceOrder(ctx, checkout)
		if err != nil {
			return err
		}

		fmt.Printf("Order %s placed: %d items, total $%s, paying with %s\n",
			order.ID, len(order.Items), order.Bill.GrandTotal.StringFixed(2), order.PaymentMethod.Name)

		info, _ := tracking.StatusInfo(order.Status)
		bar := progressbar.NewOptions(len(models.OrderStatuses)-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetDescription(info.Title),
		)

		err = a.orders.Track(ctx, order.ID, func(o *models.Order, tr tracking.Transition) {
			info, _ := tracking.StatusInfo(tr.To)
			bar.Describe(fmt.Sprintf("%s (%s)", info.Title, info.Subtitle))
			_ = bar.Set(tr.To.Rank())
		})
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		fmt.Println("Order delivered. Enjoy your meal!")
		return nil
	},
}

func init() {
	trackCmd.Flags().StringVar(&trackPayment, "payment", "p1", "Payment method id")
	trackCmd.Flags().StringVar(&trackAddress, "address", "", "Delivery address id (default is the first saved address)")
	rootCmd.AddCommand(trackCmd)
}
