package main

import (
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/internal/generate"
	"github.com/OFFIS-RIT/mdmeta/internal/storage"
	"github.com/OFFIS-RIT/mdmeta/internal/util"
	"github.com/OFFIS-RIT/mdmeta/pkg/prompt"

	"github.com/spf13/cobra"
)

var generateFlags = struct {
	source        string
	outputDir     string
	author        string
	strategy      string
	repairJSON    bool
	generateModel prompt.Model
	formatModel   prompt.Model
}{
	generateModel: prompt.DefaultGenerateModel,
	formatModel:   prompt.DefaultFormatModel,
	strategy:      string(generate.StrategyTwoStage),
	outputDir:     ".",
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate front matter for an article and write <slug>.md",
	Long: `Generate asks the model for the title, description, genre and keywords of
the source article, one after another, and writes the article with its front
matter to <slug>.md in the output directory. The output directory may also be
an s3://bucket/prefix URL. Existing files are never overwritten.`,
	Example: `  mdmeta generate -s article.txt -a "Jane Doe"
  mdmeta generate -s article.txt -a "Jane Doe" -o s3://articles/blog --format-model qwen2.5`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.source, "source", "s", "", "Article to generate metadata for, a path or s3://bucket/key")
	f.StringVarP(&generateFlags.outputDir, "output-dir", "o", generateFlags.outputDir, "Output directory or s3://bucket/prefix")
	f.StringVarP(&generateFlags.author, "author", "a", "", "Author name written to the front matter")
	f.Var(&generateFlags.generateModel, "generate-model", "Model answering the field questions (or set AI_GENERATE_MODEL)")
	f.Var(&generateFlags.formatModel, "format-model", "Model formatting answers as JSON (or set AI_FORMAT_MODEL)")
	f.StringVar(&generateFlags.strategy, "strategy", generateFlags.strategy, "Field strategy: two-stage or single-stage (or set AI_STRATEGY)")

	f.BoolVar(&generateFlags.repairJSON, "repair-json", false, "Repair malformed JSON from the format model instead of failing (or set AI_REPAIR_JSON)")

	_ = generateCmd.MarkFlagRequired("source")
	_ = generateCmd.MarkFlagRequired("author")
}

// modelSetting returns the flag value unless the flag was left at its default
// and envKey names a model.
func modelSetting(cmd *cobra.Command, flag string, envKey string, current prompt.Model) (prompt.Model, error) {
	if cmd.Flags().Changed(flag) {
		return current, nil
	}
	value := util.GetEnv(envKey)
	if value == "" {
		return current, nil
	}
	m, err := prompt.ParseModel(value)
	if err != nil {
		return "", fmt.Errorf("%s: %w", envKey, err)
	}
	return m, nil
}

func generateParams(cmd *cobra.Command) (generate.Params, error) {
	generateModel, err := modelSetting(cmd, "generate-model", "AI_GENERATE_MODEL", generateFlags.generateModel)
	if err != nil {
		return generate.Params{}, err
	}
	formatModel, err := modelSetting(cmd, "format-model", "AI_FORMAT_MODEL", generateFlags.formatModel)
	if err != nil {
		return generate.Params{}, err
	}
	strategy := generateFlags.strategy
	if !cmd.Flags().Changed("strategy") {
		strategy = util.GetEnvString("AI_STRATEGY", strategy)
	}
	repairJSON := generateFlags.repairJSON
	if !cmd.Flags().Changed("repair-json") {
		repairJSON = util.GetEnvBool("AI_REPAIR_JSON", repairJSON)
	}

	return generate.Params{
		SourcePath:    generateFlags.source,
		Output:        generateFlags.outputDir,
		Author:        generateFlags.author,
		GenerateModel: generateModel,
		FormatModel:   formatModel,
		Strategy:      generate.Strategy(strategy),
		RepairJSON:    repairJSON,
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, err := generateParams(cmd)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newCompletionClient(adapter)
	if err != nil {
		return err
	}
	sink, err := storage.Open(ctx, params.Output)
	if err != nil {
		return err
	}

	res, err := generate.NewService(client, sink).Run(ctx, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, res.FrontMatter)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Successfully appended metadata")
	fmt.Fprintf(out, "%-10s%s\n", "Title:", res.Metadata.Title)
	fmt.Fprintf(out, "%-10s%s\n", "File:", res.Location)
	return nil
}
