// Package yaml loads block templates from YAML files.
package yaml

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/blocksearch"
	"gopkg.in/yaml.v3"
)

// file is the top-level layout of a template file.
type file struct {
	Templates []templateSpec `yaml:"templates"`
}

type templateSpec struct {
	Name  string     `yaml:"name"`
	Block *blockSpec `yaml:"block"`
}

type blockSpec struct {
	Tag        string            `yaml:"tag"`
	Preset     string            `yaml:"preset"`
	Attributes map[string]string `yaml:"attributes"`
	Text       string            `yaml:"text"`
	Property   *propertySpec     `yaml:"property"`
	Children   []*blockSpec      `yaml:"children"`
}

type propertySpec struct {
	Path string `yaml:"path"`
	Attr string `yaml:"attr"`
}

// UnmarshalYAML accepts either a mapping or a bare path string.
func (p *propertySpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Path = node.Value
		return nil
	}
	type plain propertySpec
	return node.Decode((*plain)(p))
}

// Load reads templates from r. Templates are validated and names must be
// unique.
func Load(r io.Reader) ([]*blocksearch.Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "template file is empty")
		}
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "failed to parse templates: %v", err)
	}
	if len(f.Templates) == 0 {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "no templates defined")
	}

	seen := make(map[string]bool, len(f.Templates))
	templates := make([]*blocksearch.Template, 0, len(f.Templates))
	for _, spec := range f.Templates {
		if seen[spec.Name] {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "duplicate template %q", spec.Name)
		}
		seen[spec.Name] = true

		tmpl := &blocksearch.Template{Name: spec.Name}
		if spec.Block != nil {
			root, err := spec.Block.build()
			if err != nil {
				return nil, blocksearch.Errorf(blocksearch.EINVALID, "template %q: %s", spec.Name, blocksearch.ErrorMessage(err))
			}
			tmpl.Root = root
		}
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// LoadFile reads templates from the file at path.
func LoadFile(path string) ([]*blocksearch.Template, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, blocksearch.Errorf(blocksearch.ENOTFOUND, "template file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func (s *blockSpec) build() (*blocksearch.Block, error) {
	if s == nil {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "empty block")
	}

	var b *blocksearch.Block
	switch {
	case s.Tag != "" && s.Preset != "":
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "block sets both tag %q and preset %q", s.Tag, s.Preset)
	case s.Preset != "":
		b = blocksearch.Preset(s.Preset)
		if b == nil {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "unknown preset %q", s.Preset)
		}
	default:
		b = blocksearch.NewBlock(strings.TrimSpace(s.Tag))
	}

	if len(s.Attributes) > 0 {
		blocksearch.WithAttrs(s.Attributes)(b)
	}
	b.Text = s.Text
	if s.Property != nil {
		b.Property = &blocksearch.Property{Path: s.Property.Path, Attr: s.Property.Attr}
	}
	for _, cs := range s.Children {
		child, err := cs.build()
		if err != nil {
			return nil, err
		}
		b.Children = append(b.Children, child)
	}
	return b, nil
}
