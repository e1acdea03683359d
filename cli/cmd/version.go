package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/bgc/cli/render"
	"github.com/pithecene-io/bgc/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
}

// Rows implements render.Tabler.
func (v VersionResponse) Rows() [][2]string {
	return [][2]string{
		{"Version", v.Version},
		{"Commit", v.Commit},
	}
}

// VersionCommand returns the version command.
// It reports the canonical project version and never touches the input.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		r, err := render.NewRendererWithDefault(c, cfg.Format)
		if err != nil {
			return err
		}

		return r.Render(VersionResponse{
			Version: types.Version,
			Commit:  commit,
		})
	}
}
