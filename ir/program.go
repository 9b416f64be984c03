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

package ir

import (
	"fmt"
	"strings"
)

// Program is the output of IR generation: every global object and
// every lowered function.
type Program struct {
	Globals   []*Object
	Functions []*Function
}

// NewFunction allocates a function, appends it to the program, and
// returns it.
func (p *Program) NewFunction(name string) *Function {
	f := &Function{Name: name}
	p.Functions = append(p.Functions, f)
	return f
}

// String renders a textual dump per the format: global objects as
// ".<name>:<size>,<align>" lines, then one ".fun <name>:" section per
// function listing its locals the same way followed by ".block
// <label>:" sections with one instruction per line. The exact syntax
// is not meant to be bit-exact with any reference tool; it exists for
// inspection and test assertions.
func (p *Program) String() string {
	var sb strings.Builder
	for _, g := range p.Globals {
		fmt.Fprintf(&sb, ".%s:%d,%d\n", g.Name, g.Size, g.Align)
	}
	for _, f := range p.Functions {
		fmt.Fprintf(&sb, ".fun %s:\n", f.Name)
		for _, l := range f.Locals {
			fmt.Fprintf(&sb, "  .%s:%d,%d\n", l.Name, l.Size, l.Align)
		}
		for _, b := range f.Blocks {
			fmt.Fprintf(&sb, ".block %s:\n", b.Label)
			for _, in := range b.Instructions() {
				fmt.Fprintf(&sb, "  %s\n", in.String())
			}
		}
	}
	return sb.String()
}
