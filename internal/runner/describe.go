package runner

import (
	"strings"

	"github.com/ollama/ollama/api"
)

// describe normalizes a runner list record. The runner reports the model
// identifier under "model" on current versions and "name" on older ones.
func describe(m api.ListModelResponse) (Descriptor, bool) {
	name := strings.TrimSpace(m.Model)
	if name == "" {
		name = strings.TrimSpace(m.Name)
	}
	if name == "" {
		return Descriptor{}, false
	}
	return Descriptor{Name: name, Family: m.Details.Family, Size: m.Size}, true
}

func describeAll(ms []api.ListModelResponse) []Descriptor {
	out := make([]Descriptor, 0, len(ms))
	for _, m := range ms {
		if d, ok := describe(m); ok {
			out = append(out, d)
		}
	}
	return out
}
