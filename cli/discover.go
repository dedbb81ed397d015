package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/lexandro/kondo/format"
	"github.com/lexandro/kondo/ignore"
	"github.com/lexandro/kondo/project"
	"github.com/lexandro/kondo/scan"
	"github.com/lexandro/kondo/walk"
	"github.com/spf13/cobra"
)

type discoverOptions struct {
	all   bool
	quiet int
	older string
	types []string
}

// artifactDir is one existing artifact directory and its size.
type artifactDir struct {
	name string
	size int64
}

// sizedProject is a project with its artifact footprint measured.
type sizedProject struct {
	project      project.Project
	artifactSize int64
	dirs         []artifactDir
	lastModified time.Time
}

// runDiscover scans the roots, lists every project holding artifacts and
// cleans the ones the user picks.
func runDiscover(cmd *cobra.Command, a *app, args []string, opts discoverOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	roots, err := absRoots(args)
	if err != nil {
		return err
	}
	typeFilter, err := parseTypes(opts.types)
	if err != nil {
		return err
	}
	minAge, err := parseAge(opts.older)
	if err != nil {
		return err
	}

	start := time.Now()
	results := scan.ScanAll(roots, scan.Options{
		Workers: a.cfg.Workers,
		Ignore:  ignore.NewSet(roots, a.cfg.IgnoredDirs),
	})
	a.logger.Info("scan complete",
		"roots", len(roots),
		"projects", len(results.Projects),
		"errors", len(results.Errors),
		"elapsed", time.Since(start),
	)

	red := color.New(color.FgRed)
	for _, err := range results.Errors {
		red.Fprintf(errOut, "%v\n", err)
	}
	failures := len(results.Errors)

	projects := filterTypes(results.Projects, typeFilter)
	sized := sizeProjects(projects, a.cfg.Workers, minAge > 0)
	sized = keepReclaimable(sized, minAge, time.Now())

	var total int64
	for _, sp := range sized {
		total += sp.artifactSize
	}

	prompt := newPrompter(cmd.InOrStdin(), out)
	cleanRest := opts.all
	var batch []sizedProject
	var cleanedCount int
	var freed int64

review:
	for _, sp := range sized {
		// A prompt always shows the project it is about
		if opts.quiet < 2 || !cleanRest {
			printProject(out, sp, opts.quiet)
		}
		if cleanRest {
			batch = append(batch, sp)
			continue
		}
		switch prompt.ask("clean") {
		case answerYes:
			bytes, err := cleanOne(errOut, sp)
			freed += bytes
			cleanedCount++
			if err != nil {
				failures++
			}
		case answerAll:
			cleanRest = true
			batch = append(batch, sp)
		case answerQuit:
			break review
		}
	}

	if len(batch) > 0 {
		batchProjects := make([]project.Project, len(batch))
		for i, sp := range batch {
			batchProjects[i] = sp.project
		}
		errs := project.CleanAll(batchProjects, a.cfg.Workers)
		for i, sp := range batch {
			freed += sp.artifactSize - sp.project.Size()
			cleanedCount++
			if errs[i] != nil {
				reportCleanError(errOut, errs[i])
				failures++
			}
		}
	}

	fmt.Fprintln(out, format.Summary(len(sized), total))
	if cleanedCount > 0 {
		color.New(color.FgGreen).Fprintf(out, "Cleaned %d of them, freed %s\n", cleanedCount, format.PrettySize(freed))
	}
	a.logger.Info("review complete", "projects", len(sized), "cleaned", cleanedCount, "freed", freed, "failures", failures)

	if failures > 0 {
		return fmt.Errorf("%d errors occurred", failures)
	}
	return nil
}

func absRoots(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

func parseTypes(names []string) (map[project.ProjectType]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	filter := make(map[project.ProjectType]bool, len(names))
	for _, name := range names {
		pt, err := project.ParseType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		filter[pt] = true
	}
	return filter, nil
}

func filterTypes(projects []project.Project, filter map[project.ProjectType]bool) []project.Project {
	if filter == nil {
		return projects
	}
	kept := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if filter[p.Type] {
			kept = append(kept, p)
		}
	}
	return kept
}

// ageUnits extends Go durations with calendar-ish units. Lowercase m stays
// minutes.
var ageUnits = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
	'M': 30 * 24 * time.Hour,
	'y': 365 * 24 * time.Hour,
}

// parseAge accepts a Go duration or a count followed by d, w, M or y.
func parseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if unit, ok := ageUnits[s[len(s)-1]]; ok {
		n, err := strconv.Atoi(s[:len(s)-1])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid age %q", s)
		}
		return time.Duration(n) * unit, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid age %q: use a duration like 36h or a count followed by d, w, M or y", s)
	}
	return d, nil
}

// sizeProjects measures projects with a bounded worker pool. Output order
// matches input order.
func sizeProjects(projects []project.Project, workers int, withAge bool) []sizedProject {
	if workers < 1 {
		workers = walk.Parallelism()
	}
	sized := make([]sizedProject, len(projects))
	jobs := make(chan int, len(projects))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				sized[idx] = measure(projects[idx], withAge)
			}
		}()
	}
	for idx := range projects {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return sized
}

func measure(p project.Project, withAge bool) sizedProject {
	sp := sizedProject{project: p}
	for _, name := range p.PresentArtifactDirs() {
		size := project.DirSize(filepath.Join(p.Path, filepath.FromSlash(name)))
		sp.dirs = append(sp.dirs, artifactDir{name: name, size: size})
		sp.artifactSize += size
	}
	if withAge {
		sp.lastModified = p.LastModified()
	}
	return sp
}

// keepReclaimable drops projects without artifact bytes and, when minAge is
// set, projects modified more recently than now-minAge.
func keepReclaimable(sized []sizedProject, minAge time.Duration, now time.Time) []sizedProject {
	cutoff := now.Add(-minAge)
	kept := sized[:0]
	for _, sp := range sized {
		if sp.artifactSize == 0 {
			continue
		}
		if minAge > 0 && sp.lastModified.After(cutoff) {
			continue
		}
		kept = append(kept, sp)
	}
	return kept
}

func printProject(out io.Writer, sp sizedProject, quiet int) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprint(out, sp.project.Path)
	fmt.Fprint(out, " ")
	cyan.Fprintf(out, "%s project", sp.project.TypeName())
	fmt.Fprintf(out, " (%s)\n", format.PrettySize(sp.artifactSize))

	if quiet > 0 {
		return
	}
	for _, dir := range sp.dirs {
		fmt.Fprintf(out, "  └─ %s (%s)\n", dir.name, format.PrettySize(dir.size))
	}
	if !sp.lastModified.IsZero() {
		fmt.Fprintf(out, "  last modified %s ago\n", format.Duration(time.Since(sp.lastModified)))
	}
}

// cleanOne cleans a single project and returns the bytes freed.
func cleanOne(errOut io.Writer, sp sizedProject) (int64, error) {
	err := sp.project.Clean()
	if err != nil {
		reportCleanError(errOut, err)
	}
	return sp.artifactSize - sp.project.Size(), err
}

func reportCleanError(errOut io.Writer, err error) {
	red := color.New(color.FgRed)
	for _, line := range strings.Split(err.Error(), "\n") {
		red.Fprintf(errOut, "%s\n", line)
	}
}
