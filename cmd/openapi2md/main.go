// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

// openapi2md converts OpenAPI/Swagger 2.0 documents into markdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/openapi2md"
	"github.com/woozymasta/openapi2md/internal/config"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/openapi2md"
	_buildTime string
)

// stdinMarker selects standard input as specification source.
const stdinMarker = "-"

// cliOptions describes openapi2md CLI subcommands.
type cliOptions struct {
	Version  versionCommand  `command:"version" description:"Print version information"`
	Template templateCommand `command:"template" description:"Print built-in markdown template"`
	Convert  convertCommand  `command:"convert" description:"Convert OpenAPI/Swagger 2.0 document to markdown"`
}

// renderFlags groups markdown rendering flags.
type renderFlags struct {
	Output        string        `short:"o" long:"output" description:"Output markdown file path (stdout when omitted)"`
	Title         string        `short:"T" long:"title" description:"Markdown document title (default: info.title)"`
	TemplatePath  string        `short:"f" long:"template-file" description:"Path to custom main template (.gotmpl)"`
	ExampleFormat string        `short:"e" long:"example-format" description:"Generate model examples in this format" choice:"json" choice:"yaml"`
	ExampleMode   string        `long:"example-mode" description:"Properties included in generated examples" choice:"all" choice:"required"`
	Timeout       time.Duration `long:"timeout" description:"Timeout for fetching a remote document (for example: 10s)"`
	Watch         bool          `short:"w" long:"watch" description:"Re-render when the input or template file changes"`
}

// commonFlags groups flags shared by commands that load configuration.
type commonFlags struct {
	ConfigPath string `short:"c" long:"config" description:"Path to config file (default: openapi2md.yaml in working directory)"`
	Verbose    bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

// convertCommand converts a document to markdown.
type convertCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input file path or http(s) URL (optional; stdin when omitted or \"-\")"`
	} `positional-args:"yes"`

	RenderFlags renderFlags `group:"Markdown Render"`
	CommonFlags commonFlags `group:"Common"`
}

// Execute runs convert subcommand.
func (command *convertCommand) Execute(_ []string) error {
	cfg, err := command.runner.loadConfig(command.CommonFlags)
	if err != nil {
		return err
	}

	request := convertRequest{
		input:        strings.TrimSpace(command.Args.Input),
		output:       firstNonEmpty(command.RenderFlags.Output, cfg.Output),
		title:        firstNonEmpty(command.RenderFlags.Title, cfg.Title),
		templatePath: firstNonEmpty(command.RenderFlags.TemplatePath, cfg.TemplateFile),
		example: openapi2md.ExampleOptions{
			Format: openapi2md.ExampleFormat(firstNonEmpty(command.RenderFlags.ExampleFormat, cfg.Example.Format)),
			Mode:   openapi2md.ExampleMode(firstNonEmpty(command.RenderFlags.ExampleMode, cfg.Example.Mode)),
		},
		timeout: cfg.Timeout,
	}

	if command.RenderFlags.Timeout > 0 {
		request.timeout = command.RenderFlags.Timeout
	}

	if !command.RenderFlags.Watch {
		return command.runner.runConvert(context.Background(), request)
	}

	if request.input == "" || request.input == stdinMarker || openapi2md.IsRemoteSource(request.input) {
		return errors.New("watch mode requires a local input file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return command.runner.runWatch(ctx, request, cfg.Watch.Debounce)
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Name string `short:"t" long:"template" description:"Built-in template name (main or a partial)" default:"main"`
	List bool   `short:"l" long:"list" description:"List built-in template names"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	if command.List {
		_, err := fmt.Fprintln(command.runner.stdout, strings.Join(openapi2md.BuiltinTemplateNames(), "\n"))
		return err
	}

	return command.runner.runTemplate(command.Name, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	httpClient  *http.Client
	programName string
}

// convertRequest is one resolved convert invocation.
type convertRequest struct {
	input        string
	output       string
	title        string
	templatePath string
	example      openapi2md.ExampleOptions
	timeout      time.Duration
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "openapi2md"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		httpClient:  http.DefaultClient,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// loadConfig reads and validates configuration and installs the logger it selects.
func (runner *cliRunner) loadConfig(common commonFlags) (*config.Config, error) {
	cfg, err := config.Load(strings.TrimSpace(common.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.SlogLevel()
	if common.Verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(newLogger(runner.stderr, level))
	return cfg, nil
}

// runConvert loads the document, renders markdown and writes it to stdout or file.
func (runner *cliRunner) runConvert(ctx context.Context, request convertRequest) error {
	spec, err := runner.loadSpecification(ctx, request)
	if err != nil {
		return fmt.Errorf("load specification: %w", err)
	}

	renderOptions := openapi2md.Options{
		Title:   request.title,
		Example: request.example,
	}
	if request.templatePath != "" {
		customTemplate, err := os.ReadFile(request.templatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", request.templatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	rendered, err := openapi2md.Convert(spec, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	if strings.TrimSpace(request.output) == "" {
		if _, err := io.WriteString(runner.stdout, rendered); err != nil {
			return fmt.Errorf("write markdown to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(request.output, []byte(rendered), 0o600); err != nil {
		return fmt.Errorf("write markdown file %q: %w", request.output, err)
	}

	slog.Debug("wrote markdown", "path", request.output, "bytes", len(rendered))
	return nil
}

// loadSpecification reads the document from stdin, a URL or a file.
func (runner *cliRunner) loadSpecification(ctx context.Context, request convertRequest) (*openapi2md.Specification, error) {
	switch {
	case request.input == "" || request.input == stdinMarker:
		return openapi2md.ReadSpecification(runner.stdin)
	case openapi2md.IsRemoteSource(request.input):
		if request.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, request.timeout)
			defer cancel()
		}

		return openapi2md.Fetch(ctx, runner.httpClient, request.input)
	default:
		return openapi2md.LoadFile(request.input)
	}
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := openapi2md.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, tpl); err != nil {
			return fmt.Errorf("write template to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(tpl), 0o600); err != nil {
		return fmt.Errorf("write template file %q: %w", outputPath, err)
	}

	return nil
}

// newLogger builds the plain-text stderr logger used by the CLI.
func newLogger(output io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Convert.runner = runner
	options.Template.runner = runner
	options.Version.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"convert": strings.TrimSpace(fmt.Sprintf(`
Convert an OpenAPI/Swagger 2.0 document (JSON or YAML) to markdown.
Reads the document from a file, an http(s) URL or stdin; writes markdown to --output or stdout.
Settings may also come from openapi2md.yaml or OPENAPI2MD_* environment variables.

Examples:
> $ %s convert swagger.yaml > API.md
> $ %s convert -o API.md https://petstore.swagger.io/v2/swagger.json
> $ %s convert -w -o API.md swagger.yaml
> $ %s convert -e yaml --example-mode required swagger.json > API.md
`, programName, programName, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text.
Use it as a starting point for a custom template file passed with --template-file.

Examples:
> $ %s template > main.gotmpl
> $ %s template -t operation
> $ %s template --list
`, programName, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

// printVersionInfo writes build metadata.
func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
