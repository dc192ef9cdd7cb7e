package thirdvm

import (
	"fmt"
	"io"
	"strings"
)

// disassemble renders id's dictionary entry the way see prints it: its id,
// name, body (literal markers followed by their decoded literal, word ids
// as @index:name), and an immediate suffix if applicable.
func disassemble(vm *VM, id uint32) string {
	fn := vm.dict.At(id)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] : %s", id, fn.Name)

	if fn.IsNative() {
		sb.WriteString(" <native>")
	} else {
		addr := uint32(fn.Start)
		for {
			cell := vm.code.Fetch(addr)
			if cell == 0 {
				addr++
				fmt.Fprintf(&sb, " %d", int32(vm.code.Fetch(addr)))
				addr++
				continue
			}
			if cell < vm.dict.Len() {
				fmt.Fprintf(&sb, " @%d:%s", cell, vm.dict.At(cell).Name)
			} else {
				fmt.Fprintf(&sb, " @%d:?", cell)
			}
			addr++
			if cell == 1 { // return terminates the body
				break
			}
		}
	}

	if fn.IsImmediate {
		sb.WriteString(" immediate")
	}
	sb.WriteByte('\n')
	return sb.String()
}

// DumpDictionary writes a disassembly of every defined word (ids 1..Len-1)
// to w, in the style of the -dump CLI flag.
func DumpDictionary(vm *VM, w io.Writer) {
	for id := uint32(1); id < vm.dict.Len(); id++ {
		fmt.Fprint(w, disassemble(vm, id))
	}
}
