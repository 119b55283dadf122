package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/wbroach/luca1/internal/config"
	"github.com/wbroach/luca1/lang"
	"github.com/wbroach/luca1/parser"
	"github.com/wbroach/luca1/runtime"
	"github.com/wbroach/luca1/sexpr"
)

// Exit codes follow the BSD sysexits convention.
const (
	exitOK      = 0
	exitUsage   = 64
	exitStatic  = 65
	exitNoInput = 66
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("luca", flag.ContinueOnError)
	flags.SetOutput(stderr)
	emitTokens := flags.Bool("emit-tokens", false, "print the token stream and exit")
	emitAST := flags.Bool("emit-ast", false, "print the parsed program as s-expressions and exit")
	configPath := flags.String("config", "", "REPL settings file (default $"+config.EnvVar+" or ~/"+config.DefaultFile+")")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: luca [flags] [script | -]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := flags.Args()
	if len(rest) > 1 || (len(rest) == 0 && (*emitTokens || *emitAST)) {
		flags.Usage()
		return exitUsage
	}
	if len(rest) == 0 {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "luca: %v\n", err)
			return exitUsage
		}
		in := runtime.NewInterpreter(lang.WithOutput(stdout))
		runREPL(in, cfg, stdin, stdout, stderr)
		return exitOK
	}

	src, err := readSource(rest[0], stdin)
	if err != nil {
		fmt.Fprintf(stderr, "luca: %v\n", err)
		return exitNoInput
	}
	switch {
	case *emitTokens:
		return printTokens(src, stdout, stderr)
	case *emitAST:
		return printAST(src, stdout, stderr)
	}

	in := runtime.NewInterpreter(lang.WithOutput(stdout))
	return exitCode(runtime.EvaluateString(in, src), stderr)
}

func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := runtime.ReadScript(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// exitCode reports err and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, err)
	switch {
	case runtime.IsStatic(err):
		return exitStatic
	case runtime.IsRuntime(err):
		return exitRuntime
	default:
		return exitNoInput
	}
}

func printTokens(src string, stdout, stderr io.Writer) int {
	tokens, errs := parser.Scan(src)
	if len(errs) != 0 {
		return exitCode(errs, stderr)
	}
	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok)
	}
	return exitOK
}

func printAST(src string, stdout, stderr io.Writer) int {
	stmts, errs := parser.ParseString(src)
	if len(errs) != 0 {
		return exitCode(errs, stderr)
	}
	fmt.Fprint(stdout, sexpr.Print(stmts))
	return exitOK
}

func runREPL(in *lang.Interpreter, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) {
	if !isInteractive(stdin) {
		runBufferedREPL(in, bufio.NewReader(stdin), stderr)
		return
	}
	runInteractiveREPL(in, cfg, stdout, stderr)
}

// needsMoreInput reports whether src stops in the middle of a construct,
// so the REPL should keep reading lines before running it.
func needsMoreInput(src string) bool {
	_, errs := parser.ParseString(src)
	return parser.IsIncomplete(errs.Err())
}

// evalEntry runs one REPL entry. Errors are reported and the session goes on.
func evalEntry(in *lang.Interpreter, src string, stderr io.Writer) {
	if err := runtime.EvaluateString(in, src); err != nil {
		fmt.Fprintln(stderr, err)
	}
}

func runBufferedREPL(in *lang.Interpreter, reader *bufio.Reader, stderr io.Writer) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(stderr, "read error: %v\n", err)
			return
		}
		buffer.WriteString(line)
		src := buffer.String()
		atEOF := errors.Is(err, io.EOF)
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			if atEOF {
				return
			}
			continue
		}
		if needsMoreInput(src) && !atEOF {
			continue
		}
		buffer.Reset()
		evalEntry(in, src, stderr)
		if atEOF {
			return
		}
	}
}

func runInteractiveREPL(in *lang.Interpreter, cfg *config.Config, stdout, stderr io.Writer) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := ""
	if !cfg.DisableHistory {
		historyPath = cfg.HistoryFile
	}
	if historyPath != "" {
		loadHistory(state, historyPath, cfg.HistoryLimit)
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := cfg.Prompt
		if buffer.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(stdout)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(stdout)
				return
			default:
				fmt.Fprintf(stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if needsMoreInput(src) {
			continue
		}

		buffer.Reset()
		state.AppendHistory(strings.ReplaceAll(strings.TrimSpace(src), "\n", " "))
		evalEntry(in, src, stderr)
	}
}

// loadHistory reads the history file, keeping only the newest limit entries.
func loadHistory(state *liner.State, path string, limit int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	state.ReadHistory(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func isInteractive(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
