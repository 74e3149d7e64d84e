package commands

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/cli/output"
	"github.com/leapstack-labs/autohub/internal/enquiry"
)

// EnquiriesOptions holds options for the enquiries command.
type EnquiriesOptions struct {
	VehicleID string
	Limit     int
	Reveals   bool
}

// NewEnquiriesCommand creates the enquiries command.
func NewEnquiriesCommand() *cobra.Command {
	opts := &EnquiriesOptions{}

	cmd := &cobra.Command{
		Use:   "enquiries",
		Short: "List contact enquiries sent from vehicle pages",
		Example: `  # Latest enquiries
  autohub enquiries

  # Enquiries for one vehicle, with phone reveal counts
  autohub enquiries --vehicle 8712345 --reveals`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnquiries(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.VehicleID, "vehicle", "", "Only enquiries for this vehicle id")
	cmd.Flags().IntVar(&opts.Limit, "limit", enquiry.DefaultListLimit, "Maximum enquiries to show")
	cmd.Flags().BoolVar(&opts.Reveals, "reveals", false, "Also show phone reveal counts per vehicle")

	return cmd
}

func runEnquiries(cmd *cobra.Command, opts *EnquiriesOptions) error {
	cmdCtx := NewCommandContext(cmd)

	store, cleanup, err := cmdCtx.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return listEnquiries(cmd, cmdCtx.Renderer, store, opts)
}

func listEnquiries(cmd *cobra.Command, r *output.Renderer, store enquiry.Store, opts *EnquiriesOptions) error {
	enquiries, err := store.List(cmd.Context(), enquiry.ListOptions{VehicleID: opts.VehicleID, Limit: opts.Limit})
	if err != nil {
		return err
	}

	var reveals []enquiry.RevealCount
	if opts.Reveals {
		reveals, err = store.RevealCounts(cmd.Context())
		if err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := output.EnquiriesOutput{Enquiries: make([]output.EnquiryOutput, 0, len(enquiries))}
		for _, e := range enquiries {
			out.Enquiries = append(out.Enquiries, output.EnquiryOutput{
				ID:        e.ID,
				VehicleID: e.VehicleID,
				Vehicle:   e.VehicleTitle,
				Dealer:    e.DealerName,
				Name:      e.Name,
				Email:     e.Email,
				Phone:     e.Phone,
				Message:   e.Message,
				CreatedAt: e.CreatedAt,
			})
		}
		for _, rc := range reveals {
			out.Reveals = append(out.Reveals, output.RevealOutput{VehicleID: rc.VehicleID, Count: rc.Count})
		}
		return r.JSON(out)
	}

	r.Header(1, "Enquiries")
	if len(enquiries) == 0 {
		r.Muted("No enquiries yet.")
	} else {
		rows := make([][]string, 0, len(enquiries))
		for _, e := range enquiries {
			rows = append(rows, []string{
				humanize.Time(e.CreatedAt),
				e.VehicleID,
				e.VehicleTitle,
				e.Name,
				e.Email,
				e.Phone,
			})
		}
		r.Table([]string{"Received", "Vehicle", "Title", "Name", "Email", "Phone"}, rows)
	}

	if opts.Reveals {
		r.Println("")
		r.Header(2, "Phone reveals")
		if len(reveals) == 0 {
			r.Muted("No reveals yet.")
			return nil
		}
		rows := make([][]string, 0, len(reveals))
		for _, rc := range reveals {
			rows = append(rows, []string{rc.VehicleID, humanize.Comma(int64(rc.Count))})
		}
		r.Table([]string{"Vehicle", "Reveals"}, rows)
	}
	return nil
}
