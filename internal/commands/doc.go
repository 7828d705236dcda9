// Package commands provides the command-line interface for the filecrypt tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - inspection of encrypted files
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
