package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lexandro/kondo/project"
)

const (
	kibibyte = 1 << 10
	mebibyte = 1 << 20
	gibibyte = 1 << 30
	tebibyte = 1 << 40
	pebibyte = 1 << 50
	exbibyte = 1 << 60
)

// PrettySize converts a byte count to binary units with one decimal place,
// e.g. "200.0B", "4.9KiB", "1.5GiB".
func PrettySize(size int64) string {
	if size < 0 {
		size = 0
	}
	value := float64(size)
	switch {
	case size < kibibyte:
		return fmt.Sprintf("%.1fB", value)
	case size < mebibyte:
		return fmt.Sprintf("%.1fKiB", value/kibibyte)
	case size < gibibyte:
		return fmt.Sprintf("%.1fMiB", value/mebibyte)
	case size < tebibyte:
		return fmt.Sprintf("%.1fGiB", value/gibibyte)
	case size < pebibyte:
		return fmt.Sprintf("%.1fTiB", value/tebibyte)
	case size < exbibyte:
		return fmt.Sprintf("%.1fPiB", value/pebibyte)
	default:
		return fmt.Sprintf("%.1fEiB", value/exbibyte)
	}
}

// ProjectLine renders a one-line summary: path, type and artifact size.
func ProjectLine(p project.Project, artifactSize int64) string {
	return fmt.Sprintf("%s %s project (%s)", p.Path, p.TypeName(), PrettySize(artifactSize))
}

// SizeReport renders a ProjectSize breakdown, artifact directories first,
// each group ordered by size descending.
func SizeReport(p project.Project, size project.ProjectSize) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%s) ──\n", p.Path, p.TypeName()))

	dirs := append([]project.SizedDir(nil), size.Dirs...)
	sort.SliceStable(dirs, func(i, j int) bool {
		if dirs[i].Artifact != dirs[j].Artifact {
			return dirs[i].Artifact
		}
		return dirs[i].Size > dirs[j].Size
	})

	for _, dir := range dirs {
		marker := " "
		if dir.Artifact {
			marker = "*"
		}
		builder.WriteString(fmt.Sprintf("  %s %-24s %10s\n", marker, dir.Name, PrettySize(dir.Size)))
	}
	builder.WriteString(fmt.Sprintf("  artifacts: %s, other: %s, total: %s\n",
		PrettySize(size.ArtifactSize),
		PrettySize(size.NonArtifactSize),
		PrettySize(size.Total()),
	))
	return builder.String()
}

// Summary renders the closing line of a listing.
func Summary(projects int, artifactSize int64) string {
	noun := "projects"
	if projects == 1 {
		noun = "project"
	}
	return fmt.Sprintf("%d %s with %s of artifacts", projects, noun, PrettySize(artifactSize))
}

// Duration formats a duration in a human-readable way.
func Duration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	if hours < 48 {
		return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
	}
	return fmt.Sprintf("%dd%dh", hours/24, hours%24)
}
