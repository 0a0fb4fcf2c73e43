package levels

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Levels []Tier `yaml:"levels"`
}

// LoadFile reads a YAML content pack:
//
//	levels:
//	  - name: Warmup
//	    texts:
//	      - "asdf jkl"
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	tiers := make([]Tier, 0, len(file.Levels))
	for _, t := range file.Levels {
		texts := make([]string, 0, len(t.Texts))
		for _, text := range t.Texts {
			if text = strings.TrimSpace(text); text != "" {
				texts = append(texts, text)
			}
		}
		tiers = append(tiers, Tier{Name: t.Name, Texts: texts})
	}
	cat, err := NewStatic(tiers)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat, nil
}
