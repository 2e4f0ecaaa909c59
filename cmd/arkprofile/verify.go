package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ark-tools/arkprofile/internal/verify"
)

// fileVerifyResult is one path's outcome, kept alongside its input index
// so results can be printed back in input order despite running
// concurrently.
type fileVerifyResult struct {
	index int
	path  string
	res   verify.Result
	err   error
}

func newVerifyCmd() *cobra.Command {
	var verbose bool
	var workers int

	cmd := &cobra.Command{
		Use:   "verify <file>...",
		Short: "Verify declared property sizes in one or more .arkprofile files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runVerifyPool(args, workers, verbose)

			allOK := true
			for _, r := range results {
				printVerifyResult(r)
				if r.err != nil || !r.res.OK() {
					allOK = false
				}
			}
			if !allOK {
				return fmt.Errorf("one or more files failed verification")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "trace every property visited")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of files to verify concurrently")
	return cmd
}

// runVerifyPool verifies every path with a bounded number of concurrent
// workers and returns results ordered by input position, regardless of
// completion order.
func runVerifyPool(paths []string, workers int, verbose bool) []fileVerifyResult {
	if workers < 1 {
		workers = 1
	}

	var sp *spinner.Spinner
	if isTerminal(os.Stdout) {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Prefix = fmt.Sprintf("Verifying %d file(s)... ", len(paths))
		sp.Start()
	}

	jobs := make(chan int, len(paths))
	results := make([]fileVerifyResult, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = verifyOne(i, paths[i], verbose)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if sp != nil {
		sp.Stop()
	}
	return results
}

func verifyOne(index int, path string, verbose bool) fileVerifyResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileVerifyResult{index: index, path: path, err: fmt.Errorf("read %s: %w", path, err)}
	}

	var trace *os.File
	if verbose {
		trace = os.Stdout
	}
	var res verify.Result
	if trace != nil {
		res, err = verify.Walk(data, trace)
	} else {
		res, err = verify.Walk(data, nil)
	}
	if err != nil {
		return fileVerifyResult{index: index, path: path, err: fmt.Errorf("verify %s: %w", path, err)}
	}
	return fileVerifyResult{index: index, path: path, res: res}
}

func printVerifyResult(r fileVerifyResult) {
	if r.err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", r.path, r.err)
		return
	}
	status := "PASS"
	printer := color.New(color.FgGreen).SprintFunc()
	if !r.res.OK() {
		status = "FAIL"
		printer = color.New(color.FgRed).SprintFunc()
	}
	fmt.Printf("%s %s (properties checked: %d)\n", printer(status), r.path, r.res.PropertiesChecked)
	for _, e := range r.res.Errors {
		fmt.Printf("  %s\n", e)
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
