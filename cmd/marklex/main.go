package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "marklex",
	Short:         "Markup template lexer",
	Long:          `marklex tokenizes HTML-like template source into a typed token stream with exact source spans.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(tokenizeCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		if err != errDiagnostics {
			rootCmd.PrintErrln("Error:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
