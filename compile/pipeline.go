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

// Package compile wires the core stages - analysis, IR generation,
// liveness, and register allocation - into one synchronous pipeline.
// It owns no parsing: callers hand it an already-parsed
// ast.TranslationUnit and a global symtable.Scope.
package compile

import (
	"go.uber.org/zap"

	"github.com/pkg/errors"

	"accgo/analysis"
	"accgo/ast"
	"accgo/diag"
	"accgo/ir"
	"accgo/irgen"
	"accgo/liveness"
	"accgo/regalloc"
	"accgo/symtable"
)

// Pipeline runs the four-stage core against one translation unit at a
// time. It is safe to reuse across translation units; each Compile call
// starts from a fresh Reporter and irgen.Generator.
type Pipeline struct {
	regs   regalloc.Config
	logger *zap.Logger
}

// NewPipeline validates the register-allocation configuration and
// returns a Pipeline that logs each stage to logger. Pass zap.NewNop()
// to silence stage logging entirely.
func NewPipeline(regs regalloc.Config, logger *zap.Logger) (*Pipeline, error) {
	if err := regs.Validate(); err != nil {
		return nil, errors.Wrap(err, "compile: invalid register configuration")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{regs: regs, logger: logger}, nil
}

// Result is everything a caller needs after Compile returns: the
// lowered, register-allocated program and the diagnostics raised along
// the way. Reporter.HasErrors gates whether Program is safe to emit: a
// translation unit with analyzer errors still produces a best-effort
// Program, but the caller must not hand it to an emitter.
type Result struct {
	Program  *ir.Program
	Reporter *diag.Reporter
}

// Compile runs analysis, lowering, liveness, and register allocation
// over tu in order, each stage fully completing before the next
// begins. A non-nil error comes from register allocation rejecting the
// register configuration, never from a diagnostic about the input
// program; those are reported through Result.Reporter instead. The
// lowered IR itself is not checked for well-formedness.
func (p *Pipeline) Compile(tu *ast.TranslationUnit, global *symtable.Scope) (*Result, error) {
	reporter := diag.NewReporter()

	analyzer := analysis.NewAnalyzer(global, reporter)
	analyzer.AnalyzeTranslationUnit(tu)
	stats := analyzedTreeStats(tu)
	p.logger.Debug("analyze complete",
		zap.Int("declarations", len(tu.Decls)),
		zap.Int("expressions", stats.exprs),
		zap.Int("inserted_casts", stats.insertedCasts),
		zap.Bool("has_errors", reporter.HasErrors()),
	)

	gen := irgen.NewGenerator()
	program := gen.Lower(tu)
	p.logger.Debug("lower complete",
		zap.Int("functions", len(program.Functions)),
		zap.Int("globals", len(program.Globals)),
	)

	for _, fn := range program.Functions {
		liveness.Analyze(fn)
	}
	p.logger.Debug("liveness complete", zap.Int("functions", len(program.Functions)))

	for _, fn := range program.Functions {
		if err := regalloc.Allocate(fn, p.regs); err != nil {
			return nil, errors.Wrapf(err, "compile: register allocation failed for function %q", fn.Name)
		}
	}
	p.logger.Debug("regalloc complete", zap.Int("functions", len(program.Functions)))

	if reporter.HasErrors() {
		p.logger.Warn("compilation finished with diagnostics", zap.Int("count", len(reporter.Records())))
	}

	return &Result{Program: program, Reporter: reporter}, nil
}

type treeStats struct {
	exprs         int
	insertedCasts int
}

// analyzedTreeStats walks the tree the analyzer just annotated and
// sizes it for the stage log: how many expressions were visited and
// how many casts the analyzer inserted (promotions, arithmetic
// conversions, assignment coercions).
func analyzedTreeStats(tu *ast.TranslationUnit) treeStats {
	var s treeStats
	w := &ast.Walker{
		ExprPre: func(e ast.Expr) {
			s.exprs++
			if c, ok := e.(*ast.CastExpr); ok && c.Inserted {
				s.insertedCasts++
			}
		},
	}
	w.WalkTranslationUnit(tu)
	return s
}
