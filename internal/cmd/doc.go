// Package cmd runs external programs and reports their outcome as data.
//
// A non-zero exit status is not an error here: [Result] carries the combined
// output and the status, and callers decide what a failure means. This keeps
// batch operations over many repositories going past individual failures.
//
// # Usage
//
//	res := cmd.Run(ctx, repoPath, "git", "status")
//	if res.Status != 0 {
//	    // res.Output holds git's diagnostic text
//	}
//
// Backends depend on the [Runner] interface so tests can substitute the
// scripted runner from the cmdtest package.
//
// # Design Notes
//
// vcs shells out to git/hg rather than using Go libraries so that user
// configuration (SSH keys, credential helpers, aliases, color settings)
// applies unchanged.
//
// There is no timeout or cancellation: a hung external process blocks the
// calling operation until it exits.
package cmd
