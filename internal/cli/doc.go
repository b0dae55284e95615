// Package cli turns command-line arguments into a validated app.Config. It
// owns usage text and exit codes and knows nothing about compilation.
package cli
