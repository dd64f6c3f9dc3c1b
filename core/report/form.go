package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/model"
)

// Form is what the operator fills in: accident facts and the parties.
type Form struct {
	Accident model.AccidentContext `yaml:"accident"`
	Parties  []model.Party         `yaml:"parties"`
	Scene    *SceneInput           `yaml:"scene,omitempty"`

	// Coerced lists the numeric fields that could not be read and were
	// replaced by features.DefaultNumeric.
	Coerced []string `yaml:"-"`
}

// SceneInput carries optional map captures; see package scene.
type SceneInput struct {
	Location  *Point    `yaml:"location,omitempty"`
	Collision *Point    `yaml:"collision,omitempty"`
	Paths     [][]Point `yaml:"paths,omitempty"`
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// DecodeForm reads a YAML (or JSON, which YAML accepts) form. Speeds and the
// hour are coerced like any other raw input, so "fast" or "noon" read as 0
// instead of failing the decode.
func DecodeForm(r io.Reader) (Form, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Form{}, nil
		}
		return Form{}, fmt.Errorf("decode form: %w", err)
	}
	coerced := coerceNumerics(&doc)

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return Form{}, fmt.Errorf("decode form: %w", err)
	}
	var f Form
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Form{}, fmt.Errorf("decode form: %w", err)
	}
	for i := range f.Parties {
		f.Parties[i].Role = model.ParseRole(string(f.Parties[i].Role))
	}
	f.Coerced = coerced
	return f, nil
}

// coerceNumerics rewrites accident.hour and every party's
// observation.speed_kmh in place and returns the paths it had to replace.
func coerceNumerics(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	var coerced []string
	if acc := mappingValue(root, "accident"); acc != nil {
		if h := mappingValue(acc, "hour"); h != nil {
			v, ok := features.CoerceHour(scalarValue(h))
			setScalar(h, strconv.Itoa(v), "!!int")
			if !ok {
				coerced = append(coerced, "accident.hour")
			}
		}
	}
	parties := mappingValue(root, "parties")
	if parties == nil || parties.Kind != yaml.SequenceNode {
		return coerced
	}
	for i, p := range parties.Content {
		obs := mappingValue(p, "observation")
		if obs == nil {
			continue
		}
		sp := mappingValue(obs, "speed_kmh")
		if sp == nil {
			continue
		}
		// The upper clamp is the normalizer's job.
		v, ok := features.CoerceSpeed(scalarValue(sp), 0)
		setScalar(sp, strconv.FormatFloat(v, 'f', -1, 64), "!!float")
		if !ok {
			coerced = append(coerced, fmt.Sprintf("parties[%d].observation.speed_kmh", i))
		}
	}
	return coerced
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// scalarValue returns the node's text, or nil for nulls and collections.
func scalarValue(n *yaml.Node) any {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return nil
	}
	return n.Value
}

func setScalar(n *yaml.Node, value, tag string) {
	n.Kind = yaml.ScalarNode
	n.Tag = tag
	n.Value = value
	n.Style = 0
	n.Content = nil
	n.Alias = nil
}

// LoadForm reads a form file from disk.
func LoadForm(path string) (Form, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Form{}, err
	}
	defer fh.Close()
	return DecodeForm(fh)
}

// Validate checks the party count.
func (f Form) Validate() error {
	if len(f.Parties) < 2 || len(f.Parties) > 3 {
		return fmt.Errorf("%w: got %d", ErrPartyCount, len(f.Parties))
	}
	return nil
}
