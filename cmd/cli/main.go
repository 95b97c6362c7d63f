package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ritamzico/atomgraph"
	"github.com/ritamzico/atomgraph/internal/obs"
)

const replHelpText = `Commands:
  help                 Show this help message
  save                 Write the current store back to --file
  exit / quit          Exit the REPL

Any other input is treated as a DSL command against the store.

DSL examples:
  ADD NODE Concept "human"
  ADD LINK Similarity (NODE Concept "human", NODE Concept "monkey") { confidence: 0.9 }
  MATCH LINK Similarity (*, *)
  MATCH TYPE Similarity TOPLEVEL
  GET ATOM af12f10f9ae2002a1607ba0b47ba8407
  INCOMING af12f10f9ae2002a1607ba0b47ba8407 HANDLESONLY
  NODE EXISTS Concept "human"
  DELETE ATOM af12f10f9ae2002a1607ba0b47ba8407
  COUNT
`

func openGraph(path string) (*atomgraph.AtomGraph, error) {
	if path == "" {
		return atomgraph.New(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return atomgraph.New(), nil
	}
	return atomgraph.LoadFile(path)
}

func runRepl(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger := obs.Must(logLevel == "debug")
	defer logger.Sync()

	g, err := openGraph(path)
	if err != nil {
		return fmt.Errorf("loading %q: %w", path, err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("atomgraph — content-addressed hypergraph atom store")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Print(replHelpText)
			continue
		case "save":
			if path == "" {
				fmt.Fprintln(os.Stderr, "no --file given at startup, nothing to save to")
				continue
			}
			if err := g.SaveFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "save error: %v\n", err)
			} else {
				fmt.Printf("saved to %q\n", path)
			}
			continue
		}

		res, err := g.Query(line)
		if err != nil {
			logger.Debug("query failed", zap.String("dsl", line), zap.Error(err))
			fmt.Fprintf(os.Stderr, "query error: %v\n", err)
			continue
		}
		logger.Debug("query executed", zap.String("dsl", line))
		if res != nil {
			fmt.Println(res.String())
		}
	}

	if path != "" {
		if err := g.SaveFile(path); err != nil {
			return fmt.Errorf("saving %q on exit: %w", path, err)
		}
	}
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	logLevel, _ := cmd.Flags().GetString("log-level")
	line := strings.Join(args, " ")

	logger := obs.Must(logLevel == "debug")
	defer logger.Sync()

	g, err := openGraph(path)
	if err != nil {
		return fmt.Errorf("loading %q: %w", path, err)
	}

	res, err := g.Query(line)
	if err != nil {
		logger.Debug("query failed", zap.String("dsl", line), zap.Error(err))
		return fmt.Errorf("query error: %w", err)
	}
	logger.Debug("query executed", zap.String("dsl", line))
	if res != nil {
		fmt.Println(res.String())
	}

	if path != "" {
		if err := g.SaveFile(path); err != nil {
			return fmt.Errorf("saving %q: %w", path, err)
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atomgraph",
		Short: "Command-line client for the atomgraph atom store",
		Long:  "atomgraph is a content-addressed hypergraph atom store. This client runs DSL commands against a JSON snapshot file, either one at a time or interactively.",
	}
	root.PersistentFlags().StringP("file", "f", "", "path to a JSON snapshot file (created if missing, saved on exit)")
	root.PersistentFlags().String("log-level", "info", "log level: info or debug")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive DSL session",
		RunE:  runRepl,
	}

	queryCmd := &cobra.Command{
		Use:   "query COMMAND...",
		Short: "Run a single DSL command and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuery,
	}

	root.AddCommand(replCmd, queryCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
