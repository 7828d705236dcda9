package fileutil

import "strings"

// EncSuffix is appended to the names of encrypted files.
const EncSuffix = ".enc"

// PathWithEncSuffix returns the name of the encrypted file for path.
func PathWithEncSuffix(path, suffix string) string {
	return path + suffix
}

// PathWithoutEncSuffix returns the name of the decrypted file for path.
// It reports false when path does not carry the suffix, or is nothing but it.
func PathWithoutEncSuffix(path, suffix string) (string, bool) {
	if suffix == "" || !strings.HasSuffix(path, suffix) {
		return path, false
	}

	stripped := strings.TrimSuffix(path, suffix)
	if stripped == "" || strings.HasSuffix(stripped, "/") || strings.HasSuffix(stripped, `\`) {
		return path, false
	}

	return stripped, true
}
