// Package plan loads the YAML file describing which issues to file into a
// project and which field values to set on them.
package plan

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project identifies a Projects (v2) board by owner login and number.
type Project struct {
	Owner  string `yaml:"owner"`
	Number int    `yaml:"number"`
	// User is set when the owner is a user account rather than an organization.
	User bool `yaml:"user"`
}

// Issue is one issue to file. Key identifies it across runs; it defaults to the title.
type Issue struct {
	Key    string            `yaml:"key"`
	Title  string            `yaml:"title"`
	Body   string            `yaml:"body"`
	Fields map[string]string `yaml:"fields"`
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} only; a bare $word is left as written.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

type Plan struct {
	Project Project `yaml:"project"`
	// Repository is owner/name of the repository issues are created in.
	Repository string  `yaml:"repository"`
	Issues     []Issue `yaml:"issues"`
}

// Load reads a plan from path. ${VAR} references are expanded from the environment.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal([]byte(expandEnv(string(data))), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	for i := range p.Issues {
		if p.Issues[i].Key == "" {
			p.Issues[i].Key = p.Issues[i].Title
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports every problem found, joined.
func (p *Plan) Validate() error {
	var errs []error
	if p.Project.Owner == "" {
		errs = append(errs, errors.New("project.owner is required"))
	}
	if p.Project.Number <= 0 {
		errs = append(errs, errors.New("project.number must be positive"))
	}
	if _, _, err := p.RepositoryOwnerName(); err != nil {
		errs = append(errs, err)
	}
	if len(p.Issues) == 0 {
		errs = append(errs, errors.New("no issues to file"))
	}

	seen := make(map[string]int, len(p.Issues))
	for i, issue := range p.Issues {
		if strings.TrimSpace(issue.Title) == "" {
			errs = append(errs, fmt.Errorf("issues[%d]: title is required", i))
			continue
		}
		if j, ok := seen[issue.Key]; ok {
			errs = append(errs, fmt.Errorf("issues[%d]: key %q already used by issues[%d]", i, issue.Key, j))
		}
		seen[issue.Key] = i
	}
	return errors.Join(errs...)
}

// RepositoryOwnerName splits Repository into its owner and name.
func (p *Plan) RepositoryOwnerName() (string, string, error) {
	owner, name, ok := strings.Cut(p.Repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", p.Repository)
	}
	return owner, name, nil
}
