package widths

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DescriptorSet is an insertion-ordered set of human-readable descriptors.
type DescriptorSet struct {
	values []string
	index  map[string]struct{}
}

// Add inserts descriptor unless it is already present.
func (set *DescriptorSet) Add(descriptor string) {
	if set.index == nil {
		set.index = make(map[string]struct{})
	}
	if _, exists := set.index[descriptor]; exists {
		return
	}
	set.index[descriptor] = struct{}{}
	set.values = append(set.values, descriptor)
}

// Contains reports whether descriptor is present.
func (set *DescriptorSet) Contains(descriptor string) bool {
	_, exists := set.index[descriptor]
	return exists
}

// Len returns the number of descriptors.
func (set *DescriptorSet) Len() int {
	return len(set.values)
}

// Values returns the descriptors in insertion order.
func (set *DescriptorSet) Values() []string {
	return append([]string{}, set.values...)
}

// MarshalJSON encodes the set as an array.
func (set DescriptorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Values())
}

// MarshalYAML encodes the set as a sequence.
func (set DescriptorSet) MarshalYAML() (any, error) {
	return set.Values(), nil
}

var _ yaml.Marshaler = DescriptorSet{}

// Report groups width findings into three descriptor sets.
type Report struct {
	InvalidWidths   DescriptorSet `json:"invalid_widths" yaml:"invalid_widths"`
	NoMaxWidth      DescriptorSet `json:"no_max_width" yaml:"no_max_width"`
	Inconsistencies DescriptorSet `json:"inconsistencies" yaml:"inconsistencies"`
}

// Empty reports whether no findings were recorded.
func (report *Report) Empty() bool {
	return report.InvalidWidths.Len() == 0 && report.NoMaxWidth.Len() == 0 && report.Inconsistencies.Len() == 0
}
