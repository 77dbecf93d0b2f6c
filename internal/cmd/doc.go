// Package cmd provides helpers for executing shell commands with proper error handling.
//
// The helpers wrap [os/exec.CommandContext] so that a failing command's stderr
// becomes the error text, a cancelled context surfaces as [context.Canceled],
// and every invocation is logged (with its duration) in verbose mode.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "git", "-C", root, "status", "--porcelain")
//	if err != nil {
//	    // err contains stderr output if available
//	}
package cmd
