// Package syllabus holds the AZ-104 topic tree and the scope of a quiz.
package syllabus

import (
	"fmt"
	"slices"
)

// Domain is a top-level AZ-104 exam area with its sub-topics.
type Domain struct {
	Name      string
	SubTopics []string
}

// domains is the fixed exam outline, in exam order.
var domains = []Domain{
	{
		Name:      "Manage Azure identities and governance",
		SubTopics: []string{"Microsoft Entra ID", "Governance and Compliance", "Role-Based Access Control (RBAC)"},
	},
	{
		Name:      "Implement and manage storage",
		SubTopics: []string{"Storage Accounts", "Blob Storage", "Azure Files & File Sync"},
	},
	{
		Name:      "Deploy and manage Azure compute resources",
		SubTopics: []string{"Virtual Machines", "Azure App Service", "Azure Container Instances"},
	},
	{
		Name:      "Configure and manage virtual networking",
		SubTopics: []string{"Virtual Networking (VNet)", "Network Security Groups (NSGs)", "Azure DNS"},
	},
	{
		Name:      "Monitor and back up Azure resources",
		SubTopics: []string{"Azure Monitor", "Log Analytics", "Azure Backup & Recovery Services"},
	},
}

// Domains returns a copy of the exam outline.
func Domains() []Domain {
	out := make([]Domain, len(domains))
	for i, d := range domains {
		out[i] = Domain{Name: d.Name, SubTopics: slices.Clone(d.SubTopics)}
	}
	return out
}

// DomainByName looks up a domain by its exact name.
func DomainByName(name string) (Domain, bool) {
	for _, d := range domains {
		if d.Name == name {
			return Domain{Name: d.Name, SubTopics: slices.Clone(d.SubTopics)}, true
		}
	}
	return Domain{}, false
}

// DomainOf returns the domain that contains the given sub-topic.
func DomainOf(subTopic string) (Domain, bool) {
	for _, d := range domains {
		if slices.Contains(d.SubTopics, subTopic) {
			return DomainByName(d.Name)
		}
	}
	return Domain{}, false
}

// Scope narrows a quiz to part of the syllabus. The zero value covers every
// topic.
type Scope struct {
	// Topic is the focus of the generated questions: a domain or a sub-topic.
	Topic string `json:"topic,omitempty"`

	// Group is the domain that Topic belongs to. Per-topic statistics are
	// recorded under this name.
	Group string `json:"group,omitempty"`
}

// All returns the unscoped value.
func All() Scope { return Scope{} }

// ForDomain scopes a quiz to an entire domain.
func ForDomain(name string) Scope {
	return Scope{Topic: name, Group: name}
}

// ForSubTopic scopes a quiz to one sub-topic of a domain.
func ForSubTopic(domain, subTopic string) Scope {
	return Scope{Topic: subTopic, Group: domain}
}

// IsAll reports whether s covers every topic.
func (s Scope) IsAll() bool {
	return s.Topic == "" && s.Group == ""
}

// StatsTopic returns the topic name that per-topic statistics belong to.
// ok is false for unscoped quizzes.
func (s Scope) StatsTopic() (name string, ok bool) {
	switch {
	case s.Group != "":
		return s.Group, true
	case s.Topic != "":
		return s.Topic, true
	default:
		return "", false
	}
}

// Label returns a short human-readable description.
func (s Scope) Label() string {
	switch {
	case s.IsAll():
		return "All topics"
	case s.Topic == s.Group || s.Group == "":
		return "All " + s.Topic
	case s.Topic == "":
		return "All " + s.Group
	default:
		return s.Topic
	}
}

// Resolve builds a Scope from loosely specified input, as received from the
// CLI or the HTTP API. topic may name a domain or a sub-topic; group, when
// given, must be the domain containing topic. Unknown names are rejected.
func Resolve(topic, group string) (Scope, error) {
	switch {
	case topic == "" && group == "":
		return All(), nil
	case topic == "":
		if _, ok := DomainByName(group); !ok {
			return Scope{}, fmt.Errorf("unknown domain %q", group)
		}
		return ForDomain(group), nil
	}

	if d, ok := DomainByName(topic); ok {
		if group != "" && group != d.Name {
			return Scope{}, fmt.Errorf("domain %q does not match topic %q", group, topic)
		}
		return ForDomain(d.Name), nil
	}

	d, ok := DomainOf(topic)
	if !ok {
		return Scope{}, fmt.Errorf("unknown topic %q", topic)
	}
	if group != "" && group != d.Name {
		return Scope{}, fmt.Errorf("topic %q belongs to %q, not %q", topic, d.Name, group)
	}
	return ForSubTopic(d.Name, topic), nil
}
