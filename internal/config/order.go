package config

import (
	"fmt"
	"slices"
	"sort"
)

// TransformOrder returns the transform names so that each one comes after
// every transform it reads from. Ties are broken by name. A cycle between
// transforms is an error.
func (c *Config) TransformOrder() ([]string, error) {
	pending := make(map[string]int, len(c.Transforms))
	readers := make(map[string][]string)
	for name, t := range c.Transforms {
		pending[name] = 0
		for _, in := range t.Inputs {
			if _, ok := c.Transforms[in]; ok && in != name {
				pending[name]++
				readers[in] = append(readers[in], name)
			}
		}
	}

	var ready, order []string
	for name, n := range pending {
		if n == 0 {
			ready = append(ready, name)
		}
	}
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, r := range readers[name] {
			if pending[r]--; pending[r] == 0 {
				ready = append(ready, r)
			}
		}
	}

	if len(order) != len(c.Transforms) {
		var stuck []string
		for name, n := range pending {
			if n > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("transforms %v: inputs form a cycle", stuck)
	}
	return order, nil
}

// RoutingWarnings lists the inputs a single chain run in order cannot honor.
// Every transform reads the output of the one before it (the first reads all
// sources) and the sink reads the last one.
func (c *Config) RoutingWarnings(order []string) []string {
	var warnings []string
	for i, name := range order {
		inputs := c.Transforms[name].Inputs
		if i == 0 {
			for _, in := range inputs {
				if _, ok := c.Sources[in]; !ok {
					warnings = append(warnings, fmt.Sprintf("transform [%s]: input '%s' ignored, it reads from the sources", name, in))
				}
			}
			continue
		}
		prev := order[i-1]
		for _, in := range inputs {
			if in != prev {
				warnings = append(warnings, fmt.Sprintf("transform [%s]: input '%s' ignored, it reads from '%s'", name, in, prev))
			}
		}
		if !slices.Contains(inputs, prev) {
			warnings = append(warnings, fmt.Sprintf("transform [%s]: runs after '%s' although it does not list it as input", name, prev))
		}
	}

	last := ""
	if len(order) > 0 {
		last = order[len(order)-1]
	}
	for _, in := range c.Sink.Inputs {
		if last != "" && in != last {
			warnings = append(warnings, fmt.Sprintf("sink: input '%s' ignored, it reads from '%s'", in, last))
		}
	}
	return warnings
}
