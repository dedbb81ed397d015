package project

import "strings"

// Classify returns the ecosystem whose marker matches fileName. Exact names
// are checked before suffixes, so "setup.py" is Python but a file literally
// named "pom.xml" is always Maven.
func Classify(fileName string) (ProjectType, bool) {
	for t := ProjectType(0); t < numTypes; t++ {
		if kinds[t].marker != "" && kinds[t].marker == fileName {
			return t, true
		}
	}
	for t := ProjectType(0); t < numTypes; t++ {
		if kinds[t].suffix != "" && strings.HasSuffix(fileName, kinds[t].suffix) {
			return t, true
		}
	}
	return 0, false
}

// ClassifyNames picks the project type for a directory holding the given
// file names. When markers of several ecosystems coexist the lowest
// ProjectType wins, which keeps the answer independent of listing order.
func ClassifyNames(names []string) (ProjectType, bool) {
	best, found := ProjectType(0), false
	for _, name := range names {
		t, ok := Classify(name)
		if !ok {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	return best, found
}
