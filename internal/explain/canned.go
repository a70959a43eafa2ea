package explain

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/aviaryworks/fieldguide/pkg/record"
)

// The flagship allow-list: pre-authored explanations served without a
// generation call when the caller supplies no credential. Matching is exact
// (normalized name or listed synonym), never fuzzy — a query that merely
// resembles a flagship name must not be answered with stale canned text.

//go:embed canned.yaml
var cannedYAML []byte

type cannedFile struct {
	Entities []cannedEntity `yaml:"entities"`
}

type cannedEntity struct {
	Names        []string          `yaml:"names"`
	Explanations map[string]string `yaml:"explanations"`
}

// cannedIndex maps normalized identity -> role identifier -> text.
var cannedIndex map[string]map[string]string

func init() {
	var err error
	cannedIndex, err = loadCanned(cannedYAML)
	if err != nil {
		panic(fmt.Sprintf("explain: embedded canned.yaml is invalid: %v", err))
	}
}

func loadCanned(data []byte) (map[string]map[string]string, error) {
	var file cannedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	index := make(map[string]map[string]string)
	for _, e := range file.Entities {
		for _, name := range e.Names {
			index[record.Normalize(name)] = e.Explanations
		}
	}
	return index, nil
}

// cannedExplanation returns the pre-authored text for an exact identity
// match, or "" when the name is not on the allow-list or the role has no
// authored entry.
func cannedExplanation(name string, role Role) string {
	byRole, ok := cannedIndex[record.Normalize(name)]
	if !ok {
		return ""
	}
	return byRole[role.String()]
}
