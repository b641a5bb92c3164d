package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local development API server",
		Long: "Serves the WiseMind REST API from a local SQLite database until interrupted.\n" +
			"Point the client at it with WISEMIND_BASE_URL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Serve == nil {
				return errors.New("the development server is not available in this build")
			}
			return app.Serve(cmd.Context())
		},
	}
}
