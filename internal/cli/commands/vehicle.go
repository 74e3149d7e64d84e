package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/cli/output"
	"github.com/leapstack-labs/autohub/internal/listing"
)

// NewVehicleCommand creates the vehicle command.
func NewVehicleCommand() *cobra.Command {
	var images bool

	cmd := &cobra.Command{
		Use:   "vehicle <id>",
		Short: "Show one vehicle from the listing API",
		Long: `Fetch a vehicle and its dealer from the listing API and print it.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Show a vehicle
  autohub vehicle 8712345

  # Include the gallery image URLs
  autohub vehicle 8712345 --images

  # As JSON
  autohub vehicle 8712345 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVehicle(cmd, args[0], images)
		},
	}

	cmd.Flags().BoolVar(&images, "images", false, "List gallery image URLs")

	return cmd
}

func runVehicle(cmd *cobra.Command, id string, images bool) error {
	cmdCtx := NewCommandContext(cmd)

	client, err := cmdCtx.Listings()
	if err != nil {
		return err
	}

	v, err := client.Vehicle(cmd.Context(), id)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	out := vehicleOutput(v, client.BaseURL(), cmdCtx.ImageConfig(), images)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		return vehicleMarkdown(r, v, out)
	default:
		vehicleText(r, v, out)
		return nil
	}
}

// vehicleOutput converts a vehicle to its JSON form. Images are only
// listed when asked for.
func vehicleOutput(v *listing.Vehicle, apiBase string, imgs listing.ImageConfig, images bool) output.VehicleOutput {
	out := output.VehicleOutput{
		ID:           v.ID,
		Title:        v.Title,
		Make:         v.Make,
		Model:        v.Model,
		Variant:      v.Variant,
		Year:         v.Year,
		Price:        v.Price,
		PriceText:    listing.FormatPrice(v.Price),
		Mileage:      listing.FormatMileage(v.Mileage),
		Transmission: v.Transmission,
		FuelType:     v.FuelType,
		Colour:       v.Colour,
		Description:  listing.PlainText(v.Description),
		Dealer:       v.DealerName(),
		URL:          apiBase + "/api/vehicle/" + v.ID,
	}
	if s := v.Seller; s != nil {
		out.Seller = &output.SellerOutput{
			Name:       s.Name,
			SellerType: s.SellerType,
			Locality:   s.Locality,
			Province:   s.Province,
			Lat:        s.Lat,
			Lng:        s.Lng,
		}
	}
	if images {
		out.Images = listing.NewGallery(v, imgs).URLs()
	}
	return out
}

func vehicleText(r *output.Renderer, v *listing.Vehicle, out output.VehicleOutput) {
	r.Header(1, v.Title)
	r.KeyValue("Price", out.PriceText)
	r.KeyValue("Year", fmt.Sprint(v.Year))
	r.KeyValue("Mileage", out.Mileage)
	r.KeyValue("Transmission", v.Transmission)
	r.KeyValue("Fuel Type", v.FuelType)
	r.KeyValue("Color", v.Colour)
	r.KeyValue("Variant", v.Variant)
	r.KeyValue("Dealer", out.Dealer)
	if v.Seller != nil {
		r.KeyValue("Seller", listing.Humanize(v.Seller.SellerType))
		r.KeyValue("Location", v.Seller.Location())
	}

	if out.Description != "" {
		r.Println("")
		r.Println(out.Description)
	}

	if len(out.Images) > 0 {
		r.Println("")
		r.Header(2, fmt.Sprintf("Images (%d)", len(out.Images)))
		for _, u := range out.Images {
			r.Println("  " + r.Link(u, u))
		}
	}
}

func vehicleMarkdown(r *output.Renderer, v *listing.Vehicle, out output.VehicleOutput) error {
	r.Println(output.FormatHeader(1, v.Title))
	r.Println("")

	r.Table([]string{"Field", "Value"}, [][]string{
		{"ID", v.ID},
		{"Price", out.PriceText},
		{"Year", fmt.Sprint(v.Year)},
		{"Mileage", out.Mileage},
		{"Transmission", v.Transmission},
		{"Fuel Type", v.FuelType},
		{"Color", v.Colour},
		{"Variant", v.Variant},
		{"Dealer", out.Dealer},
	})

	if v.Seller != nil {
		r.Println("")
		r.Println(output.FormatHeader(2, "Seller"))
		r.Println(output.FormatKeyValue("Name", v.Seller.Name))
		r.Println(output.FormatKeyValue("Type", listing.Humanize(v.Seller.SellerType)))
		r.Println(output.FormatKeyValue("Location", v.Seller.Location()))
	}

	if strings.TrimSpace(v.Description) != "" {
		md, err := listing.Markdown(v.Description)
		if err != nil {
			return fmt.Errorf("failed to convert description: %w", err)
		}
		r.Println("")
		r.Println(output.FormatHeader(2, "Description"))
		r.Println(md)
	}

	if len(out.Images) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Images"))
		for i, u := range out.Images {
			r.Println(fmt.Sprintf("%d. %s", i+1, output.FormatLink(fmt.Sprintf("View %d", i+1), u)))
		}
	}
	return nil
}
