package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/autohub/internal/cli/config"
	"github.com/leapstack-labs/autohub/internal/cli/output"
	clitest "github.com/leapstack-labs/autohub/internal/cli/testutil"
	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing/listingtest"
	"github.com/leapstack-labs/autohub/internal/testutil"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupProject(t *testing.T) (string, *listingtest.Server) {
	t.Helper()
	api := listingtest.NewServer(t, listingtest.Corolla(), listingtest.Polo(), listingtest.Ranger())
	return clitest.SetupTestProject(t, api.URL), api
}

func TestVersion(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "AutoHub v"+Version)
	assert.Contains(t, out, "commit: "+GitCommit)
	assert.Contains(t, out, "go:     "+runtime.Version())
}

func TestVehicleCommand_JSON(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "vehicle", "8712345", "-o", "json", "--images")
	require.NoError(t, err)

	var v output.VehicleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "2022 Toyota Corolla Cross 1.8 XS", v.Title)
	assert.Equal(t, "R\u00a0389\u00a0900,00", v.PriceText)
	assert.Equal(t, "Cape Auto Centre", v.Dealer)
	require.NotNil(t, v.Seller)
	assert.Equal(t, "Bellville", v.Seller.Locality)
	assert.Len(t, v.Images, 5)
	assert.True(t, strings.HasSuffix(v.Images[4], ".jpg?v=4"), v.Images[4])
	assert.Equal(t, "One owner, full service history. Spare key & manuals.", v.Description)
}

func TestVehicleCommand_Markdown(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "vehicle", "8712345")
	require.NoError(t, err)

	clitest.AssertNoANSI(t, out)
	clitest.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# 2022 Toyota Corolla Cross 1.8 XS")
	assert.Contains(t, out, "## Seller")
	assert.Contains(t, out, "- **Location**: Bellville, Western Cape")
	assert.Contains(t, out, "## Description")
	assert.Contains(t, out, "Spare key & manuals.")
	assert.NotContains(t, out, "## Images")
}

func TestVehicleCommand_ImagesFlag(t *testing.T) {
	setupProject(t)

	out, err := execute(t, "vehicle", "8712345", "--images")
	require.NoError(t, err)
	assert.Contains(t, out, "## Images")
	assert.Contains(t, out, ".jpg?v=4")
}

func TestVehicleCommand_NotFound(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "vehicle", "404404")
	require.Error(t, err)
	assert.Equal(t, "no vehicle data found", err.Error())
}

func TestVehiclesCommand(t *testing.T) {
	_, api := setupProject(t)

	out, err := execute(t, "vehicles", "-o", "json")
	require.NoError(t, err)

	var page output.VehiclesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Vehicles, 2)
	assert.Equal(t, "2", api.LastQuery().Get("per_page"))

	out, err = execute(t, "vehicles", "--make", "ford")
	require.NoError(t, err)
	assert.Contains(t, out, "2021 Ford Ranger 2.0 Wildtrak")
	assert.Contains(t, out, "Centurion, Gauteng")
	assert.Equal(t, "ford", api.LastQuery().Get("make"))

	_, err = execute(t, "vehicles", "--model", "ranger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--model requires --make")
}

func TestAPIURLFlagOverridesFile(t *testing.T) {
	setupProject(t)
	other := listingtest.NewServer(t, listingtest.Polo())

	out, err := execute(t, "vehicles", "--api-url", other.URL, "-o", "json")
	require.NoError(t, err)

	var page output.VehiclesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, int64(1), other.Requests.Load())
}

func TestMigrateCommand(t *testing.T) {
	dir, _ := setupProject(t)

	out, err := execute(t, "migrate", "-o", "json")
	require.NoError(t, err)

	var m output.MigrateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "sqlite", m.Driver)
	assert.Positive(t, m.Version)
	assert.Equal(t, filepath.Join(dir, "data", "autohub.db"), m.DSN)
	assert.FileExists(t, m.DSN)
}

func TestEnquiriesCommand(t *testing.T) {
	dir, _ := setupProject(t)

	ctx := context.Background()
	store, err := enquiry.Open(ctx, enquiry.Config{
		Driver: enquiry.DriverSQLite,
		DSN:    filepath.Join(dir, "data", "autohub.db"),
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	e := enquiry.New("8712345", "2022 Toyota Corolla Cross 1.8 XS", "Cape Auto Centre", enquiry.Contact{
		Name:    "Thandi",
		Email:   "thandi@example.com",
		Phone:   "082 555 1234",
		Message: "Is it still available?",
	})
	require.NoError(t, store.Create(ctx, e))
	require.NoError(t, store.RecordReveal(ctx, "8712345"))
	require.NoError(t, store.RecordReveal(ctx, "8712345"))
	require.NoError(t, store.Close())

	out, err := execute(t, "enquiries", "--reveals", "-o", "json")
	require.NoError(t, err)

	var got output.EnquiriesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Enquiries, 1)
	assert.Equal(t, "Thandi", got.Enquiries[0].Name)
	assert.Equal(t, "Cape Auto Centre", got.Enquiries[0].Dealer)
	require.Len(t, got.Reveals, 1)
	assert.Equal(t, 2, got.Reveals[0].Count)

	out, err = execute(t, "enquiries", "--vehicle", "9100200")
	require.NoError(t, err)
	assert.Contains(t, out, "No enquiries yet.")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	_, err := execute(t, "init", "site")
	require.NoError(t, err)

	path := filepath.Join(dir, "site", "autohub.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 10s")
	assert.Contains(t, string(data), "session_secret: ")

	cfg, err := config.LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.UI.Port)
	assert.Len(t, cfg.UI.SessionSecret, 64)
	assert.Equal(t, "AutoHub", cfg.Site.Name)

	_, err = execute(t, "init", "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "site", "--force")
	require.NoError(t, err)
}

func TestInvalidOutputFlag(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "vehicles", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "info", "json", false)
		logger.Info("hello", "vehicle", "8712345")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "8712345", line["vehicle"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "warn", "text", false)
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "error", "text", true)
		logger.Debug("details")
		assert.Contains(t, buf.String(), "details")
	})
}
