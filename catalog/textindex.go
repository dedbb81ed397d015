package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// TextIndex provides free-text search over cataloged projects using a Bleve
// in-memory index. Documents are keyed by relative project path.
type TextIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

// NewTextIndex creates an empty in-memory index.
func NewTextIndex() (*TextIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &TextIndex{index: bleveIndex}, nil
}

// projectDocument is the document structure stored in Bleve.
type projectDocument struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Dirs string `json:"dirs"`
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	pathFieldMapping := bleve.NewTextFieldMapping()
	pathFieldMapping.Store = true
	pathFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("path", pathFieldMapping)

	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Store = true
	typeFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	dirsFieldMapping := bleve.NewTextFieldMapping()
	dirsFieldMapping.Store = false
	dirsFieldMapping.IncludeInAll = true
	docMapping.AddFieldMappingsAt("dirs", dirsFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Index adds or replaces the document for an entry. presentDirs are the
// artifact directories that existed when the entry was sized.
func (ti *TextIndex) Index(entry *Entry, presentDirs []string) error {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	doc := projectDocument{
		Path: entry.RelativePath,
		Type: entry.Project.TypeName(),
		Dirs: strings.Join(presentDirs, " "),
	}
	if err := ti.index.Index(entry.RelativePath, doc); err != nil {
		return fmt.Errorf("indexing project %s: %w", entry.RelativePath, err)
	}
	return nil
}

// Remove deletes a document.
func (ti *TextIndex) Remove(relativePath string) error {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	if err := ti.index.Delete(relativePath); err != nil {
		return fmt.Errorf("removing project %s from index: %w", relativePath, err)
	}
	return nil
}

// Search runs a query and returns matching relative paths by relevance.
// Query format:
//   - field:term, e.g. "type:node dirs:target": query-string syntax
//   - "quoted text": phrase query
//   - /regex/: regexp query against the path terms
//   - anything else: match query
func (ti *TextIndex) Search(queryString string, maxResults int) ([]string, error) {
	ti.mu.RLock()
	defer ti.mu.RUnlock()

	if maxResults <= 0 {
		maxResults = 50
	}

	searchRequest := bleve.NewSearchRequest(buildQuery(queryString))
	searchRequest.Size = maxResults

	searchResults, err := ti.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	paths := make([]string, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		paths = append(paths, hit.ID)
	}
	return paths, nil
}

func buildQuery(queryString string) query.Query {
	queryString = strings.TrimSpace(queryString)

	if queryString == "" || queryString == "*" {
		return bleve.NewMatchAllQuery()
	}

	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		regexQuery := bleve.NewRegexpQuery(queryString[1 : len(queryString)-1])
		regexQuery.SetField("path")
		return regexQuery
	}

	if strings.HasPrefix(queryString, "\"") && strings.HasSuffix(queryString, "\"") && len(queryString) > 2 {
		return bleve.NewMatchPhraseQuery(queryString[1 : len(queryString)-1])
	}

	if strings.Contains(queryString, ":") {
		return bleve.NewQueryStringQuery(queryString)
	}

	return bleve.NewMatchQuery(queryString)
}

// DocumentCount returns the number of documents in the Bleve index.
func (ti *TextIndex) DocumentCount() uint64 {
	ti.mu.RLock()
	defer ti.mu.RUnlock()
	count, _ := ti.index.DocCount()
	return count
}

// Clear removes all documents and recreates the index.
func (ti *TextIndex) Clear() error {
	ti.mu.Lock()
	defer ti.mu.Unlock()

	if err := ti.index.Close(); err != nil {
		return fmt.Errorf("closing old index: %w", err)
	}
	newIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating new index: %w", err)
	}
	ti.index = newIndex
	return nil
}

// Close closes the Bleve index.
func (ti *TextIndex) Close() error {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.index.Close()
}
