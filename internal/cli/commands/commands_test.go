package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/autohub/internal/cli/output"
	clitest "github.com/leapstack-labs/autohub/internal/cli/testutil"
	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/listing/listingtest"
)

func TestCommandShapes(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewServeCommand(), "serve", []string{"port", "open", "watch"}},
		{NewVehicleCommand(), "vehicle <id>", []string{"images"}},
		{NewVehiclesCommand(), "vehicles", []string{"page", "make", "model"}},
		{NewEnquiriesCommand(), "enquiries", []string{"vehicle", "limit", "reveals"}},
		{NewMigrateCommand(), "migrate", nil},
		{NewAssetsCommand(), "assets", []string{"src", "out", "minify"}},
		{NewInitCommand(), "init [directory]", []string{"force"}},
		{NewVersionCommand(BuildInfo{Version: "1.0.0"}), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}

	assert.Equal(t, []string{"ui"}, NewServeCommand().Aliases)
}

func TestVehicleOutput(t *testing.T) {
	v := listingtest.Corolla()
	out := vehicleOutput(v, "https://api.example.com", listing.ImageConfig{BaseURL: "https://img.example.com", Transform: "tr:w-100"}, true)

	assert.Equal(t, "https://api.example.com/api/vehicle/8712345", out.URL)
	assert.Equal(t, "Cape Auto Centre", out.Dealer)
	require.Len(t, out.Images, 5)
	assert.Equal(t, "https://img.example.com/2022/07/14/tr:w-100/8712345/toyota-corolla-cross.jpg?v=0", out.Images[0])

	polo := vehicleOutput(listingtest.Polo(), "", listing.ImageConfig{}, false)
	assert.Nil(t, polo.Seller)
	assert.Equal(t, "Anele Mokoena", polo.Dealer)
	assert.Empty(t, polo.Images)
}

func TestVehicleText(t *testing.T) {
	r := clitest.NewTestRenderer(output.ModeText)
	v := listingtest.Ranger()

	vehicleText(r.Renderer, v, vehicleOutput(v, "", listing.ImageConfig{}, false))

	out := r.Output()
	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "2021 Ford Ranger 2.0 Wildtrak")
	assert.Contains(t, out, "Diesel")
	assert.Contains(t, out, "Centurion, Gauteng")
	assert.Contains(t, out, "Double cab.")
}

func TestRenderStarterConfig(t *testing.T) {
	data, err := renderStarterConfig()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))

	api, ok := doc["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10s", api["timeout"])
	assert.Contains(t, doc, "environments")

	again, err := renderStarterConfig()
	require.NoError(t, err)
	assert.NotEqual(t, string(data), string(again), "each config gets its own session secret")
}

type failingStore struct {
	enquiry.Store
}

func (failingStore) List(context.Context, enquiry.ListOptions) ([]*enquiry.Enquiry, error) {
	return nil, errors.New("failed to list enquiries: database is locked")
}

func TestListEnquiries_StoreError(t *testing.T) {
	r := clitest.NewTestRenderer(output.ModeMarkdown)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := listEnquiries(cmd, r.Renderer, failingStore{}, &EnquiriesOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Empty(t, r.Output())
}
