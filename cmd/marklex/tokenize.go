package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"marklex/mlparser"
	"marklex/schema"
)

// errDiagnostics signals a failed run whose details were already printed.
var errDiagnostics = errors.New("diagnostics reported")

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.html",
	Short: "Tokenize a markup template file",
	Long:  `Tokenize scans a markup template into its token stream. Pass "-" to read from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("icu", false, "tokenize ICU expansion forms")
	tokenizeCmd.Flags().Bool("escaped-string", false, "treat the input as an escaped string literal")
	tokenizeCmd.Flags().Bool("preserve-line-endings", false, "keep \\r\\n sequences instead of normalizing to \\n")
	tokenizeCmd.Flags().String("leading-trivia", "", "characters to trim from token span starts")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	icu, _ := cmd.Flags().GetBool("icu")
	escapedString, _ := cmd.Flags().GetBool("escaped-string")
	preserveLineEndings, _ := cmd.Flags().GetBool("preserve-line-endings")
	leadingTrivia, _ := cmd.Flags().GetString("leading-trivia")

	source, url, err := readInput(filePath)
	if err != nil {
		return err
	}

	options := &mlparser.TokenizeOptions{
		TokenizeExpansionForms: icu,
		EscapedString:          escapedString,
		PreserveLineEndings:    preserveLineEndings,
	}
	for _, r := range leadingTrivia {
		options.LeadingTriviaChars = append(options.LeadingTriviaChars, string(r))
	}

	result := mlparser.Tokenize(source, url, schema.HtmlTagContentType, options)

	if len(result.Errors) > 0 {
		printDiagnostics(os.Stderr, result.Errors, useColor(cmd, os.Stderr))
	}

	switch format {
	case "pretty":
		err = formatTokensPretty(os.Stdout, result.Tokens)
	case "json":
		err = formatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		return errDiagnostics
	}
	return nil
}

func readInput(filePath string) (source, url string, err error) {
	if filePath == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return string(data), filePath, nil
}

func printDiagnostics(w io.Writer, diags []*mlparser.TokenError, colorize bool) {
	header := color.New(color.FgRed, color.Bold)
	location := color.New(color.FgCyan)
	if !colorize {
		header.DisableColor()
		location.DisableColor()
	}
	for _, diag := range diags {
		header.Fprint(w, "error")
		fmt.Fprintf(w, ": %s\n", diag.ContextualMessage())
		if diag.Span != nil && diag.Span.Start != nil {
			location.Fprintf(w, "  --> %s\n", diag.Span.Start)
		}
	}
	fmt.Fprintf(w, "%d error(s)\n", len(diags))
}

type tokenOutput struct {
	Type  string   `json:"type"`
	Parts []string `json:"parts"`
	Start spanEdge `json:"start"`
	End   spanEdge `json:"end"`
}

type spanEdge struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Col    int `json:"col"`
}

func formatTokensPretty(w io.Writer, tokens []*mlparser.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-24s", i+1, tok.Type)
		for _, part := range tok.Parts {
			fmt.Fprintf(w, " %q", part)
		}
		span := tok.SourceSpan
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			span.Start.Line, span.Start.Col,
			span.End.Line, span.End.Col)
	}
	return nil
}

func formatTokensJSON(w io.Writer, tokens []*mlparser.Token) error {
	output := make([]tokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, tokenOutput{
			Type:  tok.Type.String(),
			Parts: tok.Parts,
			Start: spanEdge{
				Offset: tok.SourceSpan.Start.Offset,
				Line:   tok.SourceSpan.Start.Line,
				Col:    tok.SourceSpan.Start.Col,
			},
			End: spanEdge{
				Offset: tok.SourceSpan.End.Offset,
				Line:   tok.SourceSpan.End.Line,
				Col:    tok.SourceSpan.End.Col,
			},
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
