package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "pageloadtime",
		Short:         "Measure page load times locally or through the API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL (env API_BASE)")

	root.AddCommand(measureCmd())
	root.AddCommand(getCmd(&apiBase))
	root.AddCommand(putCmd(&apiBase))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
