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
	"accgo/ctype"
	"accgo/symtable"
)

// DeclKind distinguishes a named declarator from an abstract one (a
// bare type-name, as used in a cast's target type).
type DeclKind int

const (
	Concrete DeclKind = iota
	Abstract
)

// Decl is satisfied by every declaration node.
type Decl interface {
	isDecl()
	Pos() Pos
}

// Param is one entry of a function declaration's parameter list.
// Symbol is filled in by the analyzer once the parameter has been
// bound in the function body's scope and allocated an address.
type Param struct {
	Name   string
	Type   *ctype.Type
	Symbol *symtable.Symbol
}

// ObjectDecl declares a variable (or, with Kind == Abstract, stands in
// for a bare type-name with no identifier). Symbol is filled in by the
// analyzer once the declaration has been registered and allocated an
// address.
type ObjectDecl struct {
	P           Pos
	Kind        DeclKind
	Type        *ctype.Type
	Identifier  string
	Initializer Expr
	Symbol      *symtable.Symbol
}

func (*ObjectDecl) isDecl()    {}
func (d *ObjectDecl) Pos() Pos { return d.P }

// FunctionDecl declares or defines a function. Body is nil for a bare
// prototype ("int f(void);"); otherwise the analyzer opens a nested
// scope, binds Params into it, and walks Body.
type FunctionDecl struct {
	P          Pos
	Type       *ctype.Type
	Identifier string
	Params     []Param
	Body       *BlockStmt
	Symbol     *symtable.Symbol
}

func (*FunctionDecl) isDecl()    {}
func (d *FunctionDecl) Pos() Pos { return d.P }

// TranslationUnit is the parser's top-level product: an ordered list
// of top-level declarations.
type TranslationUnit struct {
	Decls []Decl
}
