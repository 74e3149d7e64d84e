package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	s := &SiteSettings{}
	ApplyDefaults(s)

	assert.Equal(t, DefaultAPIBaseURL, s.API.BaseURL)
	assert.Equal(t, 10*time.Second, s.API.Timeout)
	assert.Equal(t, "AutoHub", s.Site.Name)
	assert.Equal(t, "082 709 3821", s.Contact.Phone)
	assert.Equal(t, 12, s.Catalog.PageSize)
	assert.Equal(t, "sqlite", s.Store.Driver)
	assert.Equal(t, DefaultStoreDSN, s.Store.DSN)

	ApplyDefaults(nil)
}

func TestApplyDefaults_KeepsValues(t *testing.T) {
	s := &SiteSettings{
		Site:  SiteConfig{Name: "Cars"},
		Store: StoreConfig{Driver: "postgres"},
	}
	ApplyDefaults(s)

	assert.Equal(t, "Cars", s.Site.Name)
	assert.Equal(t, "postgres", s.Store.Driver)
	assert.Empty(t, s.Store.DSN, "postgres has no default dsn")
}

func TestSiteSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(s *SiteSettings)
		errSubstr string
	}{
		{name: "defaults", modify: func(*SiteSettings) {}},
		{
			name:      "api url without scheme",
			modify:    func(s *SiteSettings) { s.API.BaseURL = "example.com" },
			errSubstr: "api.base_url must be an http(s) URL",
		},
		{
			name:      "ftp image url",
			modify:    func(s *SiteSettings) { s.Images.BaseURL = "ftp://img.example.com" },
			errSubstr: "images.base_url",
		},
		{
			name:      "unknown driver",
			modify:    func(s *SiteSettings) { s.Store.Driver = "mysql" },
			errSubstr: "store.driver must be sqlite or postgres",
		},
		{
			name: "postgres without dsn",
			modify: func(s *SiteSettings) {
				s.Store.Driver = "postgres"
				s.Store.DSN = ""
			},
			errSubstr: "store.dsn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SiteSettings{}
			ApplyDefaults(s)
			tt.modify(s)

			err := s.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Nil(t, s, "no config file")

	content := "site:\n  name: Karoo Cars\napi:\n  timeout: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte(content), 0600))

	s, err = LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Karoo Cars", s.Site.Name)
	assert.Equal(t, 3*time.Second, s.API.Timeout)
	assert.Equal(t, DefaultAPIBaseURL, s.API.BaseURL)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}\n"), 0600))

	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Equal(t, "", FindProjectRoot(nested, 1), "search depth is bounded")
}
