// Copyright (c) 2024 The accgo Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Command accc drives the core pipeline end to end: read a source
// file, hand it to whatever scanner/parser has been wired into
// ast.ParseFunc, then run analysis, IR generation, liveness, and
// register allocation over the result. The scanner and parser are
// external collaborators this module does not implement; accc
// documents that boundary rather than papering over it.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accgo/ast"
	"accgo/compile"
	"accgo/diag"
	"accgo/regalloc"
)

var (
	verbose   bool
	registers string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "accc",
		Short:         "accc compiles a C11 source file down to register-allocated IR",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage at debug level")
	root.PersistentFlags().StringVar(&registers, "registers", "", "comma-separated machine register indices (first 4 are spill scratch); default is a 12-slot stand-in pool")
	root.AddCommand(newCompileCmd())
	return root
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file.c>",
		Short: "compile one translation unit and print its IR dump",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}

func parseRegisters(spec string) (regalloc.Config, error) {
	if spec == "" {
		return compile.DefaultRegisters(), nil
	}
	parts := strings.Split(spec, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return regalloc.Config{}, fmt.Errorf("accc: invalid --registers entry %q: %w", p, err)
		}
		indices = append(indices, n)
	}
	return regalloc.Config{Registers: indices}, nil
}

// runCompile wires together a read, a parse, and a Pipeline.Compile
// call, then dumps the result. ast.Parse panics with a clear message
// until a real scanner/parser is wired into ast.ParseFunc by the
// caller that embeds this command (see ast.ParseFunc's doc comment).
func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("accc: reading %s: %w", path, err)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("accc: building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	regs, err := parseRegisters(registers)
	if err != nil {
		return err
	}
	pipeline, err := compile.NewPipeline(regs, logger)
	if err != nil {
		return err
	}

	reporter := diag.NewReporter()
	tu, scope := ast.Parse(src, reporter)
	if reporter.HasErrors() {
		reporter.Flush(os.Stderr)
		return fmt.Errorf("accc: %s failed to parse", path)
	}

	result, err := pipeline.Compile(tu, scope)
	if err != nil {
		return fmt.Errorf("accc: %w", err)
	}
	result.Reporter.Flush(os.Stderr)
	if result.Reporter.HasErrors() {
		return fmt.Errorf("accc: %s failed to compile", path)
	}

	fmt.Println(result.Program.String())
	return nil
}
