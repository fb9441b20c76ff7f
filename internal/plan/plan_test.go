package plan

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const samplePlan = `
project:
  owner: octo-org
  number: 3
repository: octo-org/octo-repo
issues:
  - key: login-bug
    title: Login fails
    body: Steps to reproduce...
    fields:
      Status: Todo
      Estimate: 3
      Due: "2024-05-01"
  - title: Write docs
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if p.Project.Owner != "octo-org" || p.Project.Number != 3 || p.Project.User {
		t.Errorf("Unexpected project %+v", p.Project)
	}
	if len(p.Issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(p.Issues))
	}
	want := map[string]string{"Status": "Todo", "Estimate": "3", "Due": "2024-05-01"}
	if !reflect.DeepEqual(p.Issues[0].Fields, want) {
		t.Errorf("Expected fields %v, got %v", want, p.Issues[0].Fields)
	}
	if p.Issues[1].Key != "Write docs" {
		t.Errorf("Expected key to default to the title, got %q", p.Issues[1].Key)
	}

	owner, name, err := p.RepositoryOwnerName()
	if err != nil || owner != "octo-org" || name != "octo-repo" {
		t.Errorf("Unexpected repository split %q %q %v", owner, name, err)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("PLAN_OWNER", "monalisa")
	p, err := Parse([]byte(`
project: {owner: "${PLAN_OWNER}", number: 1, user: true}
repository: monalisa/dotfiles
issues: [{title: t}]
`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Project.Owner != "monalisa" || !p.Project.User {
		t.Errorf("Unexpected project %+v", p.Project)
	}
}

func TestParse_KeepsBareDollar(t *testing.T) {
	t.Setenv("price", "should not appear")
	p, err := Parse([]byte(`
project: {owner: o, number: 1}
repository: o/r
issues:
  - title: Checkout total
    body: "Total shows $5 instead of $price"
`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := "Total shows $5 instead of $price"; p.Issues[0].Body != want {
		t.Errorf("Expected body %q, got %q", want, p.Issues[0].Body)
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing owner",
			yaml: "project: {number: 1}\nrepository: o/r\nissues: [{title: t}]",
			want: "project.owner is required",
		},
		{
			name: "bad number",
			yaml: "project: {owner: o}\nrepository: o/r\nissues: [{title: t}]",
			want: "project.number must be positive",
		},
		{
			name: "bad repository",
			yaml: "project: {owner: o, number: 1}\nrepository: octo-repo\nissues: [{title: t}]",
			want: "repository must be owner/name",
		},
		{
			name: "no issues",
			yaml: "project: {owner: o, number: 1}\nrepository: o/r",
			want: "no issues to file",
		},
		{
			name: "missing title",
			yaml: "project: {owner: o, number: 1}\nrepository: o/r\nissues: [{key: k}]",
			want: "issues[0]: title is required",
		},
		{
			name: "duplicate key",
			yaml: "project: {owner: o, number: 1}\nrepository: o/r\nissues: [{title: a, key: k}, {title: b, key: k}]",
			want: `key "k" already used by issues[0]`,
		},
		{
			name: "not yaml",
			yaml: "project: [",
			want: "failed to unmarshal plan",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(samplePlan), 0o644); err != nil {
		t.Fatalf("Failed to write plan: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file, got nil")
	}
}
