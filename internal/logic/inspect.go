package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/filecrypt/internal/fileutil"
	"github.com/idelchi/filecrypt/internal/token"
)

// RunInspect prints the unauthenticated header of each encrypted file.
// No passphrase is needed and nothing is decrypted.
func RunInspect(files []string, w io.Writer, now time.Time) error {
	var failures int

	for _, path := range files {
		data, err := fileutil.NewFile(path).ReadAll()
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, err)

			failures++

			continue
		}

		info, err := token.Inspect(data)
		if err != nil {
			fmt.Fprintf(w, "%s: not an encrypted file (%v)\n", path, err)

			failures++

			continue
		}

		fmt.Fprintf(w, "%s: scheme=%s created=%s (%s) size=%s\n",
			path,
			info.Scheme,
			info.Created.UTC().Format(time.RFC3339),
			humanize.RelTime(info.Created, now, "ago", "from now"),
			humanize.IBytes(uint64(len(data))), //nolint:gosec
		)
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d file(s) could not be inspected", ErrFailed, failures)
	}

	return nil
}
