package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/cli/output"
	"github.com/leapstack-labs/autohub/internal/listing"
)

// VehiclesOptions holds options for the vehicles command.
type VehiclesOptions struct {
	Page  int
	Make  string
	Model string
}

// NewVehiclesCommand creates the vehicles command.
func NewVehiclesCommand() *cobra.Command {
	opts := &VehiclesOptions{}

	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List a catalog page from the listing API",
		Long: `Fetch one page of the vehicle catalog. Make and model are passed to the
API as given; the API does the filtering.`,
		Example: `  # First page
  autohub vehicles

  # Third page of Toyotas
  autohub vehicles --make toyota --page 3

  # One model as JSON
  autohub vehicles --make toyota --model corolla-cross -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVehicles(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page number")
	cmd.Flags().StringVar(&opts.Make, "make", "", "Only this make (slug, e.g. toyota)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Only this model (slug, e.g. corolla-cross)")

	return cmd
}

func runVehicles(cmd *cobra.Command, opts *VehiclesOptions) error {
	if opts.Model != "" && opts.Make == "" {
		return fmt.Errorf("--model requires --make")
	}

	cmdCtx := NewCommandContext(cmd)

	client, err := cmdCtx.Listings()
	if err != nil {
		return err
	}

	page, err := client.Vehicles(cmd.Context(), listing.Query{
		Page:    max(opts.Page, 1),
		Make:    opts.Make,
		Model:   opts.Model,
		PerPage: cmdCtx.Cfg.Catalog.PageSize,
	})
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		out := output.VehiclesOutput{
			Vehicles: make([]output.VehicleOutput, 0, len(page.Vehicles)),
			Page:     page.Page,
			PerPage:  page.PerPage,
			Total:    page.Total,
		}
		for _, v := range page.Vehicles {
			out.Vehicles = append(out.Vehicles, vehicleOutput(v, client.BaseURL(), cmdCtx.ImageConfig(), false))
		}
		return r.JSON(out)
	}

	r.Header(1, fmt.Sprintf("Vehicles (page %d, %s total)", page.Page, humanize.Comma(int64(page.Total))))
	if len(page.Vehicles) == 0 {
		r.Muted("No vehicles on this page.")
		return nil
	}

	rows := make([][]string, 0, len(page.Vehicles))
	for _, v := range page.Vehicles {
		location := ""
		if v.Seller != nil {
			location = v.Seller.Location()
		}
		rows = append(rows, []string{
			v.ID,
			v.Title,
			listing.FormatPrice(v.Price),
			fmt.Sprint(v.Year),
			listing.FormatMileage(v.Mileage),
			location,
		})
	}
	r.Table([]string{"ID", "Title", "Price", "Year", "Mileage", "Location"}, rows)

	if page.HasNext() {
		r.Muted(fmt.Sprintf("Next: autohub vehicles --page %d", page.Page+1))
	}
	return nil
}
