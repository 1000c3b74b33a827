package simulation

import (
	"fmt"
	"strings"
)

// Policy names a page replacement policy.
type Policy string

const (
	PolicyFIFO Policy = "fifo"
	PolicyLFU  Policy = "lfu"
	PolicyOPT  Policy = "opt"
)

// AllPolicies lists every policy in reporting order.
var AllPolicies = []Policy{PolicyOPT, PolicyFIFO, PolicyLFU}

// ParsePolicy converts a policy name, case-insensitively, into a Policy.
// "belady" is accepted as another name for OPT.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo":
		return PolicyFIFO, nil
	case "lfu":
		return PolicyLFU, nil
	case "opt", "belady":
		return PolicyOPT, nil
	default:
		return "", fmt.Errorf("unknown policy %q", s)
	}
}

// ParsePolicies parses a comma separated list of policy names.
func ParsePolicies(s string) ([]Policy, error) {
	var policies []Policy

	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}

		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}

		policies = append(policies, p)
	}

	if len(policies) == 0 {
		return nil, fmt.Errorf("no policy in %q", s)
	}

	return policies, nil
}

// DisplayName returns the name used in result reports.
func (p Policy) DisplayName() string {
	switch p {
	case PolicyFIFO:
		return "FIFO simulation"
	case PolicyLFU:
		return "LFU simulation"
	case PolicyOPT:
		return "Belady's optimal algorithm simulation"
	default:
		return string(p) + " simulation"
	}
}
