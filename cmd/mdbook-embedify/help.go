package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-embedify [flags]")
	fmt.Fprintln(w, "       mdbook-embedify <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, runs as an mdBook preprocessor: reads [context, book]")
	fmt.Fprintln(w, "JSON on stdin and writes the book to stdout. Add to book.toml:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  [preprocessor.embedify]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  supports   Report whether a renderer is supported (exit status)")
	fmt.Fprintln(w, "  process    Expand embeds in plain Markdown files")
	fmt.Fprintln(w, "  apps       List available app templates")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	printEngineFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdbook-embedify help <command>' for details on a specific command.")
}

// printEngineFlags prints flags that override book settings.
func printEngineFlags(w io.Writer) {
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintln(w, "  -w, --workers <n>         Chapters transformed in parallel (0 = auto)")
	fmt.Fprintln(w, "  -t, --template-dir <dir>  Custom template directory")
	fmt.Fprintln(w, "      --ignore-mode <s>     Ignore region scanning: paired, greedy")
	fmt.Fprintln(w, "      --no-user-templates   Skip the per-user template directory")
}

// printCommonFlags prints output control flags.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             More logging (-v info, -vv debug)")
	fmt.Fprintln(w, "      --no-color            Disable colored logs")
}

// printProcessUsage prints usage for the process command.
func printProcessUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-embedify process [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expand embed markers in Markdown files outside mdBook.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown files or directories; '-' or none reads stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <path>       book.toml or YAML settings file")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout)")
	fmt.Fprintln(w, "  -i, --in-place            Rewrite files in place")
	fmt.Fprintln(w)
	printEngineFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printAppsUsage prints usage for the apps command.
func printAppsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-embedify apps [flags] [app]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available app templates and where each comes from")
	fmt.Fprintln(w, "(book, user, embedded). With an app name, print its template.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>       book.toml or YAML settings file")
	fmt.Fprintln(w, "  -t, --template-dir <dir>  Custom template directory")
	fmt.Fprintln(w, "      --no-user-templates   Skip the per-user template directory")
}

// runHelp prints help for a specific command.
func runHelp(command string, env *Environment) {
	switch command {
	case "":
		printUsage(env.Stdout)
	case "process":
		printProcessUsage(env.Stdout)
	case "apps":
		printAppsUsage(env.Stdout)
	case "supports":
		fmt.Fprintln(env.Stdout, "Usage: mdbook-embedify supports <renderer>")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Exit 0 if the renderer is supported, 1 otherwise. Called by mdBook.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdbook-embedify version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdbook-embedify help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", command)
		printUsage(env.Stderr)
	}
}
