package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/mcncl/beangen/internal/analyzer"
	"github.com/mcncl/beangen/internal/config"
	"github.com/mcncl/beangen/internal/emitter"
	"github.com/mcncl/beangen/internal/errors"
	"github.com/mcncl/beangen/internal/formatter"
	"github.com/mcncl/beangen/internal/generator"
	"github.com/mcncl/beangen/internal/models"
	"github.com/mcncl/beangen/internal/parser"
)

// Version information
const (
	Version = "0.1.0"
)

const description = `Builds Kotlin Realm classes from the beans in a sample JSON file.

One class file is written per JSON object shape, nested objects included.`

// CLI defines the command-line interface. The four positional arguments
// keep the order sampleFile, package, beanName, memberVisibility.
type CLI struct {
	SampleFile       string `arg:"" optional:"" name:"sampleFile" help:"Path to the sample JSON file, or '-' to read stdin."`
	Package          string `arg:"" optional:"" name:"package" help:"Package of the generated classes. Default: com.example."`
	BeanName         string `arg:"" optional:"" name:"beanName" help:"Name of the top-level class. Default: the sample file name."`
	MemberVisibility string `arg:"" optional:"" name:"memberVisibility" help:"Visibility keyword for members (private, protected, internal, public). Default: none."`

	Config    string           `help:"Path to a YAML config file. Searched upwards from the working directory if not set." short:"c"`
	OutputDir string           `help:"Directory for the generated files. Default: model." short:"o"`
	DryRun    bool             `help:"Print the generated classes instead of writing them."`
	Debug     bool             `help:"Enable debug logging." short:"d"`
	Version   kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context of one invocation
type Context struct {
	CLI    *CLI
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute parses args, runs the generator and returns the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1

	parser, err := kong.New(&cli,
		kong.Name("beangen"),
		kong.Description(description),
		kong.Vars{"version": "beangen version " + Version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "beangen: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		// --help or --version already printed their output
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "beangen: %v\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: beangen --help\n")
		return 1
	}

	if cli.SampleFile == "" {
		_ = kctx.PrintUsage(false)
		return 0
	}

	logger := newLogger(stderr, cli.Debug)

	cfg, err := config.LoadConfigWithCLI(cli.Config, config.CLIOverrides{
		Package:    cli.Package,
		RootName:   cli.BeanName,
		Visibility: cli.MemberVisibility,
		OutputDir:  cli.OutputDir,
		Debug:      cli.Debug,
	})
	if err == nil && cfg.Dev.Debug && !cli.Debug {
		logger = newLogger(stderr, true)
	}
	if err == nil {
		err = run(&Context{
			CLI:    &cli,
			Config: cfg,
			Logger: logger,
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
		})
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(stderr, "\nFor help, run: beangen --help\n")
		return 1
	}
	return 0
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// 1. Parse the sample
	ir, err := parseInput(ctx)
	if err != nil {
		return err
	}

	rootName := cfg.RootName
	if rootName == "" {
		rootName = beanNameFromPath(ctx.CLI.SampleFile)
	}
	ctx.Logger.Debug("settings",
		"package", cfg.Package, "bean", rootName, "visibility", cfg.Visibility, "output_dir", cfg.OutputDir)

	out := emitter.New(cfg.OutputDir, ctx.Logger)
	if !ctx.CLI.DryRun {
		if err := out.EnsureDir(); err != nil {
			return err
		}
	}

	// 2. Collect one class per object shape
	result := analyzer.NewAnalyzerWithConfig(cfg, ctx.Logger).Analyze(ir, rootName)

	// 3. Render every class before anything is written
	files, err := generator.NewGenerator(cfg).GenerateFiles(result)
	if err != nil {
		return err
	}

	// 4. Normalize the generated code
	f := formatter.NewFormatter(cfg.Formatting.SortImports)
	for i := range files {
		files[i].Content, err = f.Format(files[i].Content)
		if err != nil {
			return errors.NewFormatError(fmt.Sprintf("failed to format bean '%s'", files[i].ClassName), err)
		}
	}

	// 5. Output the result
	if ctx.CLI.DryRun {
		return printFiles(ctx.Stdout, out.Dir(), files)
	}
	_, err = out.EmitAll(files)
	return err
}

// beanNameFromPath returns the file name up to its first dot.
func beanNameFromPath(path string) string {
	if path == "-" {
		return config.DefaultStdinRootName
	}
	name, _, _ := strings.Cut(filepath.Base(path), ".")
	return name
}

// parseInput reads the sample from a file, or from stdin for "-"
func parseInput(ctx *Context) (models.IntermediateRepresentation, error) {
	if ctx.CLI.SampleFile != "-" {
		return parser.ParseFile(ctx.CLI.SampleFile)
	}

	if f, ok := ctx.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return readInteractiveInput(ctx)
	}

	jsonData, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseString(string(jsonData))
}

// readInteractiveInput lets users paste a sample and finish with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context) (models.IntermediateRepresentation, error) {
	fmt.Fprintln(ctx.Stderr, "beangen interactive mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON sample below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var jsonBuilder strings.Builder
	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	if strings.TrimSpace(jsonBuilder.String()) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return parser.ParseString(jsonBuilder.String())
}

// printFiles writes every generated file to w, each preceded by its path.
func printFiles(w io.Writer, dir string, files []generator.GeneratedFile) error {
	for i, file := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return errors.NewOutputError("failed to write to stdout", err)
			}
		}
		if _, err := fmt.Fprintf(w, "// %s\n%s", filepath.Join(dir, file.FileName), file.Content); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
	}
	return nil
}
