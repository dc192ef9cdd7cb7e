// Package thirdvm implements an indirect-threaded virtual machine hosting a
// stack-based, concatenative language in the Forth tradition.
//
// The VM executes a linear stream of word identifiers (the code segment)
// against an explicit value stack, return stack, and local stack. A
// Terminal reads textual input, tokenises it, and either runs words
// immediately (Eval mode) or appends them to the code segment (Compile
// mode), so the language grows itself: user-defined words extend the
// primitive set, and immediate words participate in compilation.
//
// The dictionary, code segment, and const-data segment are owned by the
// VM and grow monotonically for its lifetime. A Process owns its own value,
// return, and local stacks and holds a non-owning back-reference to its VM.
// Terminal is a Process with an added stack of input streams.
package thirdvm
