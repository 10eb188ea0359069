// Package registry loads tool descriptors from disk and answers lookups by
// name. Loading is forgiving per document (malformed sources are skipped with
// a warning) but strict overall: a registry with zero executable descriptors
// is a configuration error the caller must treat as fatal.
package registry

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/router/tool"
	"github.com/kiosk404/portkey/pkg/logger"
	"github.com/kiosk404/portkey/pkg/utils/json"
)

// DescriptorFileName is the file collected when the toolset path is a
// directory.
const DescriptorFileName = "toolset.json"

// Registry holds the descriptors loaded from one or more sources.
type Registry struct {
	tools []tool.Descriptor
}

// Load reads tool descriptors from path. A directory is walked recursively
// for toolset.json documents (sorted for deterministic order); a file is read
// as a single document. Each document holds either one descriptor or an
// ordered array of them.
func Load(path string) (*Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errno.ErrNoToolSources, path)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = collectDescriptorFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to walk toolset dir %q: %w", path, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no %s under %s", errno.ErrNoToolSources, DescriptorFileName, path)
		}
	}

	reg := &Registry{}
	for _, f := range files {
		descs, err := loadDocument(f)
		if err != nil {
			logger.Warn("skipping toolset %s: %v", f, err)
			continue
		}
		reg.tools = append(reg.tools, descs...)
	}
	logger.Debug("loaded %d tool descriptors from %d sources", len(reg.tools), len(files))
	return reg, nil
}

func collectDescriptorFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == DescriptorFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// loadDocument parses one descriptor document. Descriptors whose parameters
// do not compile as a JSON Schema are dropped individually so one bad entry
// does not sink the rest of the file.
func loadDocument(path string) ([]tool.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var descs []tool.Descriptor
	if isArrayDocument(data) {
		if err := json.Unmarshal(data, &descs); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	} else {
		var d tool.Descriptor
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		descs = []tool.Descriptor{d}
	}

	kept := descs[:0]
	for _, d := range descs {
		if err := compileCheck(d.Parameters); err != nil {
			logger.Warn("skipping tool %q in %s: invalid parameters schema: %v", d.Name, path, err)
			continue
		}
		kept = append(kept, d)
	}
	return kept, nil
}

func isArrayDocument(data []byte) bool {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return strings.HasPrefix(trimmed, "[")
}

// compileCheck verifies the declared parameters form a valid JSON Schema.
func compileCheck(s tool.Schema) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tool.json", doc); err != nil {
		return err
	}
	_, err = c.Compile("tool.json")
	return err
}

// Tools returns every loaded descriptor in source order.
func (r *Registry) Tools() []tool.Descriptor {
	return r.tools
}

// Executable returns the descriptors with a complete execution binding.
// Returns errno.ErrNoUsableTools when none qualify.
func (r *Registry) Executable() ([]tool.Descriptor, error) {
	var out []tool.Descriptor
	for _, d := range r.tools {
		if d.Executable() {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, errno.ErrNoUsableTools
	}
	return out, nil
}

// FindByName returns the descriptor with the given name, or nil.
func FindByName(tools []tool.Descriptor, name string) *tool.Descriptor {
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i]
		}
	}
	return nil
}

// Names returns the tool names in order, for error messages and listings.
func Names(tools []tool.Descriptor) []string {
	names := make([]string, 0, len(tools))
	for _, d := range tools {
		names = append(names, d.Name)
	}
	return names
}

// Summaries maps descriptors to the model-facing subset.
func Summaries(tools []tool.Descriptor) ([]tool.Summary, error) {
	out := make([]tool.Summary, 0, len(tools))
	for i := range tools {
		var s tool.Summary
		if err := copier.Copy(&s, &tools[i]); err != nil {
			return nil, fmt.Errorf("failed to summarize tool %q: %w", tools[i].Name, err)
		}
		out = append(out, s)
	}
	return out, nil
}
