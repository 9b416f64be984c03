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

package ast

import (
	"accgo/diag"
	"accgo/symtable"
)

// Parser is the narrow contract this module expects from a scanner and
// recursive-descent parser: given a source buffer and a reporter to
// record lexical and grammar errors into, produce a translation unit
// and the translation-unit scope declarations land in before analysis
// begins.
type Parser func(src []byte, reporter *diag.Reporter) (*TranslationUnit, *symtable.Scope)

// ParseFunc is the process-wide hook a caller wires a real scanner and
// parser into. It is nil by default: this module implements everything
// downstream of a parsed AST (analysis, IR generation, liveness,
// register allocation) and leaves scanning and parsing to the embedding
// frontend. Calling Parse before ParseFunc is set panics with a message
// pointing here rather than failing with a nil-pointer dereference.
var ParseFunc Parser

// Parse invokes ParseFunc, panicking with a descriptive message if no
// parser has been wired in.
func Parse(src []byte, reporter *diag.Reporter) (*TranslationUnit, *symtable.Scope) {
	if ParseFunc == nil {
		panic("ast: no parser wired in; set ast.ParseFunc to a scanner/parser pair before calling ast.Parse (see cmd/accc)")
	}
	return ParseFunc(src, reporter)
}
