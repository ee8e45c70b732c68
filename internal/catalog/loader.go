package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizbox/internal/quiz"
)

//go:embed content/*.yaml
var contentFS embed.FS

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://quizbox/series.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// seriesSchema compiles the embedded series schema once.
func seriesSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse series schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile series schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ParseSeries decodes and validates one series document. name is used for
// error messages and, when the document has no topic, to derive it.
func ParseSeries(name string, data []byte) (Series, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Series{}, fmt.Errorf("%s: parse yaml: %w", name, err)
	}
	if doc == nil {
		return Series{}, fmt.Errorf("%s: empty document", name)
	}

	// The schema validator works on JSON values, so normalise the YAML
	// document through encoding/json first.
	raw, err := json.Marshal(doc)
	if err != nil {
		return Series{}, fmt.Errorf("%s: convert to json: %w", name, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Series{}, fmt.Errorf("%s: convert to json: %w", name, err)
	}

	sch, err := seriesSchema()
	if err != nil {
		return Series{}, err
	}
	if err := sch.Validate(parsed); err != nil {
		return Series{}, fmt.Errorf("%s: schema validation failed: %w", name, err)
	}

	var s Series
	if err := json.Unmarshal(raw, &s); err != nil {
		return Series{}, fmt.Errorf("%s: decode series: %w", name, err)
	}
	if s.Topic == "" {
		s.Topic = topicFromName(name)
	}

	var errs []error
	for _, g := range s.Games {
		if err := quiz.Validate(g); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return Series{}, fmt.Errorf("%s: %w", name, errors.Join(errs...))
	}
	return s, nil
}

// topicFromName derives a topic key from a file name such as
// "03-emotional-intelligence.yaml".
func topicFromName(name string) string {
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(name)), path.Ext(name))
	if i := strings.IndexByte(base, '-'); i > 0 && isDigits(base[:i]) {
		base = base[i+1:]
	}
	return base
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Load reads every *.yaml and *.yml file at the root of fsys, in file
// name order, and builds a catalogue from them.
func Load(fsys fs.FS) (*Catalog, error) {
	series, err := loadSeries(fsys)
	if err != nil {
		return nil, err
	}
	return New(series)
}

func loadSeries(fsys fs.FS) ([]Series, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := path.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var (
		series []Series
		errs   []error
	)
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", name, err))
			continue
		}
		s, err := ParseSeries(name, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		series = append(series, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return series, nil
}

func embeddedSeries() ([]Series, error) {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return loadSeries(sub)
}

// LoadDir builds a catalogue from the embedded content with the series in
// dir layered on top: a series whose topic matches an embedded one
// replaces it in place, new topics are appended.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}

	base, err := embeddedSeries()
	if err != nil {
		return nil, err
	}
	extra, err := loadSeries(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	return New(overlay(base, extra))
}

func overlay(base, extra []Series) []Series {
	out := make([]Series, len(base))
	copy(out, base)

	pos := make(map[string]int, len(out))
	for i, s := range out {
		pos[s.Topic] = i
	}
	for _, s := range extra {
		if i, ok := pos[s.Topic]; ok {
			out[i] = s
			continue
		}
		pos[s.Topic] = len(out)
		out = append(out, s)
	}
	return out
}

// ValidateFS checks every series file of fsys on its own, without the
// embedded content, and returns the number of games it holds. The error
// joins every problem found.
func ValidateFS(fsys fs.FS) (int, error) {
	series, err := loadSeries(fsys)
	if err != nil {
		return 0, err
	}
	c, err := New(series)
	if err != nil {
		return 0, err
	}
	return c.Len(), nil
}
