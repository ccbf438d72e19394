// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/render"
	"github.com/promptpack/promptpack/internal/services/clipboard"
	"github.com/promptpack/promptpack/internal/sink"
	"github.com/promptpack/promptpack/internal/tokenizer"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
	"github.com/promptpack/promptpack/internal/walker"
)

const (
	modeFlagName           = "mode"
	outputFlagName         = "output"
	noClipboardFlagName    = "no-clipboard"
	truncateFlagName       = "truncate-n"
	includeFlagName        = "include"
	excludeFlagName        = "exclude"
	sortFlagName           = "sort"
	hideEmptyFlagName      = "hide-empty"
	followSymlinksFlagName = "follow-symlinks"
	noGitignoreFlagName    = "no-gitignore"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	configFlagName         = "config"
	versionFlagName        = "version"
	globalFlagName         = "global"
	forceFlagName          = "force"

	versionTemplate      = "promptpack version: %s\n"
	defaultRootPath      = "."
	rootUse              = "promptpack [path]"
	rootShortDescription = "promptpack exports a project directory as a Markdown prompt"
	rootLongDescription  = `promptpack walks a project directory and renders its files into a single
Markdown document ready to paste into an AI chat prompt. Code files are
included in full, other text files are head/tail truncated, and binary
files are skipped. The document is copied to the clipboard by default.`
	rootUsageExample = `  # Copy the current project to the clipboard
  promptpack

  # Write the document to a file with the acknowledgement preamble
  promptpack --mode ack -o prompt.md ./service

  # Only Go sources, with a token estimate
  promptpack --include '*.go' --tokens`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default ` + config.ConfigFileName + ` configuration file into the
working directory, or into the global configuration directory with --global.`

	modeFlagDescription           = "instruction preamble: export, ack, or describe"
	outputFlagDescription         = "write the document to this file instead of the clipboard"
	noClipboardFlagDescription    = "print the document to stdout instead of the clipboard"
	truncateFlagDescription       = "head/tail line window for non-code text files"
	includeFlagDescription        = "only include files matching the glob (repeatable)"
	excludeFlagDescription        = "additional directory name to exclude (repeatable)"
	sortFlagDescription           = "file ordering: path, name, or none"
	hideEmptyFlagDescription      = "skip zero-byte files"
	followSymlinksFlagDescription = "follow symbolic links"
	noGitignoreFlagDescription    = "do not honor .gitignore"
	tokensFlagDescription         = "include a token estimate in the document metadata"
	modelFlagDescription          = "tokenizer model used for the token estimate"
	configFlagDescription         = "path to an explicit configuration file"
	versionFlagDescription        = "display application version"
	globalFlagDescription         = "write the global configuration file"
	forceFlagDescription          = "overwrite an existing configuration file"

	invalidModeMessageFormat = "invalid mode value '%s': expected export, ack, or describe"
	invalidSortMessageFormat = "invalid sort value '%s': expected path, name, or none"
	errorRootMissingFormat   = "project root '%s' does not exist"
	errorRootNotDirFormat    = "project root '%s' is not a directory"
	errorRootStatFormat      = "stat failed for project root '%s': %w"
	errorAbsolutePathFormat  = "abs failed for '%s': %w"

	warningFileReadFormat      = "Warning: skipping unreadable file %s: %v\n"
	warningTokenizerInitFormat = "token estimation disabled: %v"
	warningTokenCountFormat    = "Warning: failed to count tokens for %s: %v\n"
	configInitializedFormat    = "Configuration written to %s."
	exportCompletedFormat      = "Rendered %d files from %s at %s."
	defaultTokenizerModelName  = "gpt-4o"
)

// rootOptions aggregates every flag of the root command.
type rootOptions struct {
	mode           string
	outputPath     string
	noClipboard    bool
	truncateLines  int
	includeGlobs   []string
	excludeDirs    []string
	sortOrder      string
	hideEmpty      bool
	followSymlinks bool
	noGitignore    bool
	tokensEnabled  bool
	tokenModel     string
	configPath     string
}

// Execute runs the promptpack application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := createRootCommand(loggerInstance)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger) *cobra.Command {
	var showVersion bool
	var options rootOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultRootPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runExport(command, rootPath, options, loggerInstance)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVar(&options.mode, modeFlagName, types.ModeExport, modeFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&options.noClipboard, noClipboardFlagName, false, noClipboardFlagDescription)
	rootCommand.Flags().IntVar(&options.truncateLines, truncateFlagName, config.DefaultTruncateLines, truncateFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.includeGlobs, includeFlagName, nil, includeFlagDescription)
	rootCommand.Flags().StringArrayVar(&options.excludeDirs, excludeFlagName, nil, excludeFlagDescription)
	rootCommand.Flags().StringVar(&options.sortOrder, sortFlagName, types.SortByPath, sortFlagDescription)
	rootCommand.Flags().BoolVar(&options.hideEmpty, hideEmptyFlagName, false, hideEmptyFlagDescription)
	rootCommand.Flags().BoolVar(&options.followSymlinks, followSymlinksFlagName, false, followSymlinksFlagDescription)
	rootCommand.Flags().BoolVar(&options.noGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(createInitCommand(loggerInstance))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand writing the default configuration.
func createInitCommand(loggerInstance *zap.Logger) *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  force,
			})
			if initError != nil {
				return initError
			}
			loggerInstance.Info(fmt.Sprintf(configInitializedFormat, writtenPath))
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// applyConfiguration overlays file-based configuration under explicit flags.
// A flag the user set always wins over the configuration file.
func applyConfiguration(command *cobra.Command, options *rootOptions) error {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return loadError
	}

	flags := command.Flags()
	if !flags.Changed(modeFlagName) && applicationConfiguration.Mode != "" {
		options.mode = applicationConfiguration.Mode
	}
	if !flags.Changed(truncateFlagName) && applicationConfiguration.TruncateLines != nil {
		options.truncateLines = *applicationConfiguration.TruncateLines
	}
	if !flags.Changed(outputFlagName) && applicationConfiguration.Output != "" {
		options.outputPath = applicationConfiguration.Output
	}
	if !flags.Changed(noClipboardFlagName) && applicationConfiguration.Clipboard != nil {
		options.noClipboard = !*applicationConfiguration.Clipboard
	}
	if !flags.Changed(sortFlagName) && applicationConfiguration.Sort != "" {
		options.sortOrder = applicationConfiguration.Sort
	}
	if !flags.Changed(hideEmptyFlagName) && applicationConfiguration.HideEmpty != nil {
		options.hideEmpty = *applicationConfiguration.HideEmpty
	}
	if !flags.Changed(noGitignoreFlagName) && applicationConfiguration.UseGitignore != nil {
		options.noGitignore = !*applicationConfiguration.UseGitignore
	}
	if !flags.Changed(excludeFlagName) && len(applicationConfiguration.Exclude) > 0 {
		options.excludeDirs = applicationConfiguration.Exclude
	}
	if !flags.Changed(includeFlagName) && len(applicationConfiguration.Include) > 0 {
		options.includeGlobs = applicationConfiguration.Include
	}
	if !flags.Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	if !flags.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenModel = applicationConfiguration.Tokens.Model
	}
	return nil
}

// runExport executes the export pipeline: walk, classify, render, assemble, deliver.
func runExport(command *cobra.Command, rootPath string, options rootOptions, loggerInstance *zap.Logger) error {
	if configurationError := applyConfiguration(command, &options); configurationError != nil {
		return configurationError
	}
	if !isSupportedMode(options.mode) {
		return fmt.Errorf(invalidModeMessageFormat, options.mode)
	}
	if !isSupportedSortOrder(options.sortOrder) {
		return fmt.Errorf(invalidSortMessageFormat, options.sortOrder)
	}

	validatedRoot, rootValidationError := resolveAndValidateRoot(rootPath)
	if rootValidationError != nil {
		return rootValidationError
	}

	settings := config.NewSettings(options.excludeDirs, options.truncateLines)

	excludedOutputPath := ""
	if options.outputPath != "" {
		absoluteOutputPath, absoluteOutputError := filepath.Abs(options.outputPath)
		if absoluteOutputError != nil {
			return fmt.Errorf(errorAbsolutePathFormat, options.outputPath, absoluteOutputError)
		}
		excludedOutputPath = filepath.Clean(absoluteOutputPath)
	}

	fileEntries, walkError := walker.Collect(walker.Options{
		Root:               validatedRoot,
		Settings:           settings,
		IncludeGlobs:       options.includeGlobs,
		ExcludedOutputPath: excludedOutputPath,
		FollowSymlinks:     options.followSymlinks,
		HideEmpty:          options.hideEmpty,
		UseGitignore:       !options.noGitignore,
		SortOrder:          options.sortOrder,
	})
	if walkError != nil {
		return walkError
	}

	var tokenCounter tokenizer.Counter
	tokenModel := ""
	if options.tokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(options.tokenModel)
		if counterError != nil {
			loggerInstance.Warn(fmt.Sprintf(warningTokenizerInitFormat, counterError))
		} else {
			tokenCounter = createdCounter
			tokenModel = resolvedModel
		}
	}

	renderedFiles, documentStats := renderFiles(fileEntries, settings, tokenCounter, tokenModel)

	document := render.AssembleDocument(render.DocumentOptions{
		Mode:     options.mode,
		RootPath: validatedRoot.AbsolutePath,
		Version:  utils.GetApplicationVersion(),
		Stats:    documentStats,
	}, renderedFiles)
	loggerInstance.Info(fmt.Sprintf(exportCompletedFormat, documentStats.RenderedFiles, validatedRoot.AbsolutePath, utils.FormatTimestamp(time.Now())))

	deliverySink := sink.New(clipboard.NewService(), os.Stdout, zapReporter{logger: loggerInstance})
	switch {
	case options.outputPath != "":
		return deliverySink.WriteFile(document, options.outputPath)
	case options.noClipboard:
		return deliverySink.Print(document)
	default:
		return deliverySink.CopyToClipboard(document)
	}
}

// renderFiles reads, classifies, and renders each collected file, containing
// per-file errors to that file.
func renderFiles(
	fileEntries []types.FileEntry,
	settings config.Settings,
	tokenCounter tokenizer.Counter,
	tokenModel string,
) ([]types.RenderedFile, types.DocumentStats) {
	renderedFiles := make([]types.RenderedFile, 0, len(fileEntries))
	var documentStats types.DocumentStats

	for _, fileEntry := range fileEntries {
		fileContent, readError := os.ReadFile(fileEntry.AbsolutePath)
		if readError != nil {
			fmt.Fprintf(os.Stderr, warningFileReadFormat, fileEntry.AbsolutePath, readError)
			continue
		}

		renderedFile := render.RenderFile(fileEntry, fileContent, settings)
		if renderedFile.Classification == types.ClassificationBinary {
			documentStats.SkippedBinary = append(documentStats.SkippedBinary, fileEntry.RelativePath)
			continue
		}

		documentStats.RenderedFiles++
		documentStats.TotalSizeBytes += int64(len(fileContent))
		if tokenCounter != nil {
			countResult, countError := tokenizer.CountBytes(tokenCounter, fileContent)
			if countError != nil {
				fmt.Fprintf(os.Stderr, warningTokenCountFormat, fileEntry.AbsolutePath, countError)
			} else if countResult.Counted {
				documentStats.TokenCount += countResult.Tokens
			}
		}
		renderedFiles = append(renderedFiles, renderedFile)
	}

	documentStats.TokenModel = tokenModel
	return renderedFiles, documentStats
}

// isSupportedMode reports whether the provided mode is recognized.
func isSupportedMode(mode string) bool {
	switch mode {
	case types.ModeExport, types.ModeAck, types.ModeDescribe:
		return true
	default:
		return false
	}
}

// isSupportedSortOrder reports whether the provided sort order is recognized.
func isSupportedSortOrder(sortOrder string) bool {
	switch sortOrder {
	case types.SortByPath, types.SortByName, types.SortNone:
		return true
	default:
		return false
	}
}

// resolveAndValidateRoot converts the input path to absolute form and
// verifies it is an existing directory.
func resolveAndValidateRoot(rootPath string) (types.ValidatedRoot, error) {
	absolutePath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return types.ValidatedRoot{}, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	rootInfo, rootStatError := os.Stat(cleanPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return types.ValidatedRoot{}, fmt.Errorf(errorRootMissingFormat, rootPath)
		}
		return types.ValidatedRoot{}, fmt.Errorf(errorRootStatFormat, rootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return types.ValidatedRoot{}, fmt.Errorf(errorRootNotDirFormat, rootPath)
	}
	return types.ValidatedRoot{AbsolutePath: cleanPath}, nil
}

// zapReporter adapts the application logger to the sink.Reporter interface.
type zapReporter struct {
	logger *zap.Logger
}

func (reporter zapReporter) Info(message string) {
	reporter.logger.Info(message)
}

func (reporter zapReporter) Warn(message string) {
	reporter.logger.Warn(message)
}
