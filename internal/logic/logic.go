// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/filecrypt"
	"github.com/idelchi/filecrypt/internal/filter"
	"github.com/idelchi/filecrypt/internal/fileutil"
	"github.com/idelchi/filecrypt/internal/kdf"
	"github.com/idelchi/filecrypt/internal/token"
)

var (
	// ErrDecryptionFailed is reported for a token that does not verify, whatever the cause.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrFailed is returned by Run when at least one file failed.
	ErrFailed = errors.New("processing failed")
)

// Prompter supplies passphrases and overwrite decisions.
type Prompter interface {
	Passphrase(label string) (string, error)
	ConfirmedPassphrase(label, confirmLabel string) (string, error)
	ConfirmOverwrite(path string) (bool, error)
}

// Runner processes the files named in a configuration.
type Runner struct {
	Config   *config.Config
	Prompter Prompter
	Logger   *slog.Logger
	Stdout   io.Writer
	Stderr   io.Writer
}

// job is one file to process.
type job struct {
	input  string
	output string
}

// result represents the outcome of processing a single file.
type result struct {
	input      string
	output     string
	outputSize int64
	err        error
}

// Run is the main logic of the application.
func Run(ctx context.Context, cfg *config.Config, prompter Prompter, logger *slog.Logger) error {
	runner := &Runner{
		Config:   cfg,
		Prompter: prompter,
		Logger:   logger,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	return runner.Run(ctx)
}

// Run resolves the files, asks for the passphrase once and processes every file.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	files, skipped, err := r.resolve()
	if err != nil {
		return err
	}

	r.Logger.Debug("resolved files", "files", len(files), "skipped", skipped)

	jobs, errored := r.plan(files)
	if len(jobs) == 0 {
		return r.finish(len(files), 0, errored, 0, start)
	}

	passphrase, err := r.passphrase()
	if err != nil {
		return err
	}

	deriver := r.Config.Deriver()

	r.Logger.Debug("deriving key", "kdf", deriver.String())

	key := deriver.Derive(passphrase, []byte(r.Config.Salt))
	defer key.Zero()

	scheme, err := r.Config.Scheme()
	if err != nil {
		return err
	}

	cipher := token.New(token.WithScheme(scheme), token.WithMaxAge(r.Config.MaxAge))

	processed, failed, totalSize := r.process(ctx, jobs, key, cipher)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return r.finish(len(files), processed, errored+failed, totalSize, start)
}

// resolve expands directory arguments, honoring the exclude patterns.
func (r *Runner) resolve() ([]string, int, error) {
	excludes := append([]string{}, r.Config.Exclude...)

	if r.Config.ExcludeFile != "" {
		patterns, err := filter.LoadPatterns(r.Config.ExcludeFile)
		if err != nil {
			return nil, 0, err
		}

		excludes = append(excludes, patterns...)
	}

	selection := filter.Selection{
		Suffix:   r.Config.Suffix,
		Decrypt:  r.Config.Decrypt,
		Excludes: excludes,
	}

	files, skipped, err := selection.Resolve(r.Config.Files)
	if err != nil {
		return nil, 0, fmt.Errorf("resolving files: %w", err)
	}

	return files, skipped, nil
}

// plan maps inputs to outputs and settles overwrite questions before any
// passphrase is asked. Rejected inputs are reported and counted.
func (r *Runner) plan(files []string) (jobs []job, errored int) {
	for _, input := range files {
		output, ok := r.outputPath(input)
		if !ok {
			fmt.Fprintf(r.Stderr, "File '%s' is not a valid '%s' encrypted file.\n", input, r.Config.Suffix)

			errored++

			continue
		}

		if !fileutil.NewFile(input).Exists() {
			fmt.Fprintf(r.Stderr, "The specified file '%s' cannot be found. Check the path and try again.\n", input)

			errored++

			continue
		}

		if fileutil.NewFile(output).Exists() && !r.Config.Overwrite {
			overwrite, err := r.Prompter.ConfirmOverwrite(output)
			if err != nil {
				fmt.Fprintf(r.Stderr, "Error processing %q: %v\n", input, err)

				errored++

				continue
			}

			if !overwrite {
				if !r.Config.Quiet {
					fmt.Fprintf(r.Stdout, "Nothing to do for '%s'.\n", input)
				}

				continue
			}
		}

		jobs = append(jobs, job{input: input, output: output})
	}

	return jobs, errored
}

// outputPath derives the output name from the input and the configured suffix.
// Decryption requires the input to carry the suffix.
func (r *Runner) outputPath(input string) (string, bool) {
	if !r.Config.Decrypt {
		return fileutil.PathWithEncSuffix(input, r.Config.Suffix), true
	}

	return fileutil.PathWithoutEncSuffix(input, r.Config.Suffix)
}

func (r *Runner) passphrase() (string, error) {
	if r.Config.Decrypt {
		return r.Prompter.Passphrase("Input passphrase for decryption: ")
	}

	return r.Prompter.ConfirmedPassphrase(
		"Input passphrase for encryption: ",
		"Confirm passphrase for encryption: ",
	)
}

// process runs the jobs on a bounded worker pool while a printer goroutine
// reports the results in completion order.
func (r *Runner) process(ctx context.Context, jobs []job, key kdf.Key, cipher *token.Cipher) (processed, errored int, totalSize int64) {
	results := make(chan result, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(r.Config.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for res := range results {
			if res.err != nil {
				errored++

				if errors.Is(res.err, ErrDecryptionFailed) {
					fmt.Fprintf(r.Stderr, "Invalid passphrase. File decryption failed for '%s'.\n", res.input)
				} else {
					fmt.Fprintf(r.Stderr, "Error processing %q: %v\n", res.input, res.err)
				}

				continue
			}

			processed++

			totalSize += res.outputSize

			if !r.Config.Quiet {
				if r.Config.Decrypt {
					fmt.Fprintf(r.Stdout, "Done. Decrypted file saved in '%s'\n", res.output)
				} else {
					fmt.Fprintf(r.Stdout, "Done. Encrypted file saved in '%s'\n", res.output)
				}
			}

			if r.Config.Delete {
				if err := os.Remove(res.input); err != nil {
					fmt.Fprintf(r.Stderr, "Error deleting %q: %v\n", res.input, err)
				} else if !r.Config.Quiet {
					fmt.Fprintf(r.Stdout, "Deleted '%s'\n", res.input)
				}
			}
		}
	}()

	for _, j := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			size, err := r.processFile(j, key, cipher)

			results <- result{input: j.input, output: j.output, outputSize: size, err: err}

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // only cancellation is returned, checked by the caller

	close(results)

	<-done // Wait for printer to finish

	return processed, errored, totalSize
}

// processFile encrypts or decrypts a single file through the Cryptography binding.
func (r *Runner) processFile(j job, key kdf.Key, cipher *token.Cipher) (int64, error) {
	source := fileutil.NewFile(j.input)
	destination := &fileutil.File{
		Path:               j.output,
		Origin:             j.input,
		PreserveTimestamps: r.Config.PreserveTimestamps,
	}

	crypt := filecrypt.New(source, destination,
		filecrypt.WithKey(key),
		filecrypt.WithCipher(cipher),
		filecrypt.WithLogger(r.Logger.With("file", j.input)),
	)
	defer crypt.Close()

	if r.Config.Decrypt {
		res, err := crypt.Decrypt()
		if err != nil {
			return 0, err
		}

		if !res.OK() {
			return 0, ErrDecryptionFailed
		}
	} else if err := crypt.Encrypt(); err != nil {
		return 0, err
	}

	return fileutil.Size(j.output)
}

func (r *Runner) finish(files, processed, errored int, totalSize int64, start time.Time) error {
	if r.Config.Stats {
		r.printStats(files, processed, errored, totalSize, time.Since(start))
	}

	if errored > 0 {
		return fmt.Errorf("%w: %d file(s) failed", ErrFailed, errored)
	}

	return nil
}

func (r *Runner) printStats(files, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(r.Stderr, "\nStats\n")
	fmt.Fprintf(r.Stderr, "  Files:     %d\n", files)
	fmt.Fprintf(r.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(r.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(r.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(r.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
