// Package format renders per-repository results for the terminal.
//
// Every repository gets a block headed by its path and backend type:
//
//	=== src/foo (git) ===
//	On branch main
//	nothing to commit, working tree clean
//
// Failed results get an error-styled header and, when the backend printed
// nothing, a line naming the exit status. With [Options.ShowCommand] the
// invocations behind the result are listed under the header.
package format
