// Command mdmeta generates front matter metadata for articles with a local
// language model.
package main

import (
	"fmt"
	"os"

	"github.com/OFFIS-RIT/mdmeta/internal/util"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger"
	"github.com/OFFIS-RIT/mdmeta/pkg/logger/console"

	"github.com/spf13/cobra"
)

var (
	debug   bool
	adapter string
)

var rootCmd = &cobra.Command{
	Use:   "mdmeta",
	Short: "Generate article metadata with a local language model",
	Long: `mdmeta asks a locally hosted language model for the title, description,
genre and keywords of an article and prepends them as TOML front matter.

Configuration is read from flags, then the environment (and a .env file),
then built-in defaults.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		util.LoadEnv()
		if !cmd.Flags().Changed("debug") {
			debug = util.GetEnvBool("DEBUG", debug)
		}
		if !cmd.Flags().Changed("adapter") {
			adapter = util.GetEnvString("AI_ADAPTER", adapter)
		}
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: debug}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (or set DEBUG=true)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "ollama", "Completion backend: ollama or openai (or set AI_ADAPTER)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(modelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
