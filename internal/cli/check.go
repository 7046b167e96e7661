package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/bethropolis/trailspace/internal/app"
	"github.com/bethropolis/trailspace/internal/config"
	"github.com/bethropolis/trailspace/internal/console"
	"github.com/bethropolis/trailspace/plugins/trailingspaces"
)

// Check reports every trailing whitespace region in paths without changing
// any file. It returns ErrTrailingWhitespace when something was found.
func Check(ctx context.Context, cfg *config.Config, paths []string, out, errOut io.Writer, verbose bool) error {
	files, err := ExpandPaths(paths)
	if err != nil {
		return err
	}
	results := processFiles(ctx, cfg, files, checkFile)
	return reportCheck(out, errOut, results, verbose)
}

func checkFile(ctx context.Context, a *app.App, res *FileResult) error {
	if err := a.ExecuteCommand(ctx, trailingspaces.CommandHighlight); err != nil {
		return err
	}
	found, err := findings(a, res.Path)
	if err != nil {
		return err
	}
	res.Findings = found
	return nil
}

func reportCheck(out, errOut io.Writer, results []FileResult, verbose bool) error {
	total := 0
	var rows [][]string
	for _, res := range results {
		if verbose && res.Skipped != "" {
			fmt.Fprintln(errOut, console.FormatInfoMessage(fmt.Sprintf("Skipped %s (%s)", console.ToRelativePath(res.Path), res.Skipped)))
		}
		if len(res.Findings) == 0 {
			continue
		}
		for _, f := range res.Findings {
			fmt.Fprint(out, console.FormatFinding(f))
		}
		total += len(res.Findings)
		rows = append(rows, []string{console.ToRelativePath(res.Path), strconv.Itoa(len(res.Findings))})
	}

	if err := reportErrors(errOut, results); err != nil {
		return err
	}

	if total == 0 {
		fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("No trailing whitespace in %d file(s)", len(results))))
		return nil
	}

	if len(rows) > 1 {
		fmt.Fprint(out, console.RenderTable(console.TableConfig{
			Title:    "Trailing whitespace",
			Headers:  []string{"File", "Regions"},
			Rows:     rows,
			TotalRow: []string{"Total", strconv.Itoa(total)},
		}))
	}
	fmt.Fprintln(out, console.FormatWarningMessage(fmt.Sprintf("Found %d trailing whitespace region(s) in %d file(s)", total, len(rows))))
	return ErrTrailingWhitespace
}
