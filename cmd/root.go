package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvdig/internal/formatter"
	"github.com/oakwood-commons/kvdig/internal/keyparse"
	"github.com/oakwood-commons/kvdig/internal/limiter"
	"github.com/oakwood-commons/kvdig/internal/typespec"
	"github.com/oakwood-commons/kvdig/pkg/dig"
	"github.com/oakwood-commons/kvdig/pkg/loader"
	"github.com/oakwood-commons/kvdig/pkg/logger"
	"github.com/oakwood-commons/kvdig/pkg/settings"
)

const stdinArg = "-"

var (
	debug       bool
	quiet       bool
	noColor     bool
	rawKeys     bool
	outputFlag  string
	inputFormat string
	maxDepth    int
	limits      limiter.Config
	typeFlag    = typespec.NewFlag()
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " FILE [KEY...]",
	Short: "Look up a nested value in a JSON, YAML or TOML document",
	Long: `kvdig loads FILE (or stdin when FILE is "-") and follows KEY arguments
one level at a time. Keys that read as literals are typed: 0 indexes a list,
"0" is the string key "0", true and null are the bool and null keys.

A missing key exits with status 3 and reports the chain of keys that did
resolve. With --type, a final value of another type exits with status 4.
Numbers keep the type their decoder gives them: YAML integers are int, TOML
integers are int64, and JSON numbers are float64.`,
	Example: `  kvdig config.yaml servers 0 host
  kubectl get pod web -o json | kvdig - metadata labels app
  kvdig -t int64 settings.toml database port
  kvdig --raw-keys data.json 0`,
	Args:          usageArgs(cobra.MinimumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		run := settings.NewCliParams()
		if debug {
			run.MinLogLevel = -1
		}
		run.Output = outputFlag
		run.RawKeys = rawKeys
		run.IsQuiet = quiet
		run.NoColor = noColor || os.Getenv("NO_COLOR") != ""

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		lgr := logger.Get(run.MinLogLevel)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		ctx = logger.WithLogger(ctx, lgr)
		cmd.SetContext(settings.IntoContext(ctx, run))
		return nil
	},
	RunE: runDig,
}

func runDig(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)
	run := settings.FromContextOrDefault(ctx)

	out, err := formatter.ParseFormat(run.Output)
	if err != nil {
		return usageError{err}
	}
	inFormat, err := loader.ParseFormat(inputFormat)
	if err != nil {
		return usageError{err}
	}
	if err := limits.Validate(); err != nil {
		return usageError{err}
	}

	root, err := loadInput(cmd.InOrStdin(), args[0], inFormat)
	if err != nil {
		return err
	}
	lgr.V(1).Info("loaded input", logger.InputKey, args[0], logger.FormatKey, string(inFormat))

	keys, err := parseKeys(args[1:], run.RawKeys)
	if err != nil {
		return err
	}
	lgr.V(1).Info("digging", logger.KeysKey, fmt.Sprint(keys), logger.ExpectedKey, typeFlag.String())

	v, err := dig.DigType(root, typeFlag.Expected(), keys...)
	if err != nil {
		return err
	}
	v = limits.Apply(v)

	w := cmd.OutOrStdout()
	rendered, err := formatter.Render(v, formatter.Resolve(out, writerIsTerminal(w)), formatter.Options{
		NoColor:  run.NoColor || !writerIsTerminal(w),
		MaxDepth: maxDepth,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// loadInput reads the document named by path, or r when path is "-". An
// explicit format overrides the file extension.
func loadInput(r io.Reader, path string, format loader.Format) (any, error) {
	if path == stdinArg {
		root, err := loader.LoadReader(r, format)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return root, nil
	}
	if format == loader.FormatAuto {
		root, err := loader.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return root, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := loader.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func parseKeys(tokens []string, raw bool) ([]any, error) {
	if raw {
		return keyparse.Raw(tokens), nil
	}
	p, err := keyparse.New()
	if err != nil {
		return nil, fmt.Errorf("key parser: %w", err)
	}
	return p.ParseAll(tokens), nil
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && formatter.IsTerminal(f)
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := rootCmd.Flags()
	flags.VarP(typeFlag, "type", "t", "expected type of the final value: "+strings.Join(typespec.Names(), "|")+
		" (integers are int from YAML, int64 from TOML, float64 from JSON)")
	flags.StringVarP(&outputFlag, "output", "o", string(formatter.FormatAuto), "output format: auto|yaml|json|toml|raw|table|tree")
	flags.StringVarP(&inputFormat, "input-format", "f", "auto", "input format: auto|json|ndjson|yaml|toml")
	flags.BoolVar(&rawKeys, "raw-keys", false, "treat every KEY as a string")
	flags.IntVar(&maxDepth, "max-depth", 0, "limit tree output depth (0 = unlimited)")
	flags.IntVar(&limits.Limit, "limit", 0, "show only the first N elements of a list or map result")
	flags.IntVar(&limits.Offset, "offset", 0, "skip the first N elements of a list or map result")
	flags.IntVar(&limits.Tail, "tail", 0, "show only the last N elements; ignores --offset")
	flags.BoolVarP(&quiet, "quiet", "q", false, "do not print errors; rely on the exit status")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")

	rootCmd.Flags().SortFlags = false
	rootCmd.AddCommand(versionCmd)
}

// executed is the command the last Execute dispatched to.
var executed *cobra.Command

// Execute runs the root command.
func Execute() error {
	c, err := rootCmd.ExecuteC()
	executed = c
	return err
}
