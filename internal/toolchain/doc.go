// Package toolchain resolves, downloads, and installs Zig compiler releases.
//
// # Flow
//
// An install runs as a strictly sequential pipeline:
//
//	fetch index -> resolve platform -> select version -> download -> install
//
// Any failure aborts the run. The wrapper script on the user's PATH is only
// rewritten after the new release has been extracted and its compiler binary
// found, so a failed run leaves the previous installation untouched.
//
// # Layout
//
//	<root>/current/<archive-dir>/zig   extracted releases (never pruned)
//	<root>/manifest.json               record of the active install
//	<root>/install.lock                held while an install runs
//	<bin_dir>/zig                      wrapper forwarding to the active release
package toolchain
