package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Entry points bundled by Build, relative to the source directory.
const (
	ScriptEntry     = "autohub.ts"
	StylesheetEntry = "autohub.css"
)

// BuildResult lists the files Build wrote.
type BuildResult struct {
	Files []string
}

// Build bundles the script and stylesheet in srcDir into outDir/js and
// outDir/css.
func Build(srcDir, outDir string, minify bool) (*BuildResult, error) {
	buildOpts := api.BuildOptions{
		EntryPoints: []string{
			filepath.Join(srcDir, ScriptEntry),
			filepath.Join(srcDir, StylesheetEntry),
		},
		Bundle: true,
		Write:  false,
		Outdir: outDir,

		Loader: map[string]api.Loader{
			".ts":  api.LoaderTS,
			".css": api.LoaderCSS,
		},

		Platform:    api.PlatformBrowser,
		Format:      api.FormatIIFE,
		Target:      api.ES2020,
		TreeShaking: api.TreeShakingTrue,
		Sourcemap:   api.SourceMapNone,
		LogLevel:    api.LogLevelSilent,
	}

	if minify {
		buildOpts.MinifyWhitespace = true
		buildOpts.MinifyIdentifiers = true
		buildOpts.MinifySyntax = true
	}

	result := api.Build(buildOpts)

	if len(result.Errors) > 0 {
		var errMsg strings.Builder
		for _, err := range result.Errors {
			if err.Location != nil {
				fmt.Fprintf(&errMsg, "%s:%d:%d: %s\n",
					err.Location.File,
					err.Location.Line,
					err.Location.Column,
					err.Text)
				continue
			}
			errMsg.WriteString(err.Text + "\n")
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg.String())
	}

	res := &BuildResult{}
	for _, file := range result.OutputFiles {
		sub := "js"
		if filepath.Ext(file.Path) == ".css" {
			sub = "css"
		}
		dst := filepath.Join(outDir, sub, filepath.Base(file.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create asset directory: %w", err)
		}
		if err := os.WriteFile(dst, file.Contents, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		res.Files = append(res.Files, dst)
	}

	if len(res.Files) == 0 {
		return nil, fmt.Errorf("no assets generated")
	}

	return res, nil
}
