package projects

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

// DataType is the ProjectV2FieldType reported for a field.
type DataType string

const (
	DataTypeAssignees          DataType = "ASSIGNEES"
	DataTypeDate               DataType = "DATE"
	DataTypeIteration          DataType = "ITERATION"
	DataTypeLabels             DataType = "LABELS"
	DataTypeLinkedPullRequests DataType = "LINKED_PULL_REQUESTS"
	DataTypeMilestone          DataType = "MILESTONE"
	DataTypeNumber             DataType = "NUMBER"
	DataTypeRepository         DataType = "REPOSITORY"
	DataTypeReviewers          DataType = "REVIEWERS"
	DataTypeSingleSelect       DataType = "SINGLE_SELECT"
	DataTypeText               DataType = "TEXT"
	DataTypeTitle              DataType = "TITLE"
	DataTypeTracks             DataType = "TRACKS"
)

// Editable reports whether updateProjectV2ItemFieldValue can set fields of this type.
func (t DataType) Editable() bool {
	switch t {
	case DataTypeDate, DataTypeIteration, DataTypeNumber, DataTypeSingleSelect, DataTypeText, DataTypeTitle:
		return true
	}
	return false
}

// Field is one of *CommonField, *SingleSelectField or *IterationField,
// chosen by the __typename the API returned for the node.
type Field interface {
	FieldID() string
	FieldName() string
	FieldType() DataType
}

// CommonField is a ProjectV2Field: text, number, date and the built-in fields.
type CommonField struct {
	ID       string
	Name     string
	DataType DataType
}

func (f *CommonField) FieldID() string     { return f.ID }
func (f *CommonField) FieldName() string   { return f.Name }
func (f *CommonField) FieldType() DataType { return f.DataType }

type Option struct {
	ID   string
	Name string
}

// SingleSelectField is a ProjectV2SingleSelectField and its options.
type SingleSelectField struct {
	CommonField
	Options []Option
}

type Iteration struct {
	ID        string
	Title     string
	StartDate string
	Duration  int
	Completed bool
}

// IterationField is a ProjectV2IterationField with its active and completed iterations.
type IterationField struct {
	CommonField
	Iterations []Iteration
}

const (
	typeNameField        = "ProjectV2Field"
	typeNameSingleSelect = "ProjectV2SingleSelectField"
	typeNameIteration    = "ProjectV2IterationField"
)

type iterationNode struct {
	ID        githubv4.String
	Title     githubv4.String
	StartDate githubv4.String
	Duration  githubv4.Int
}

type fieldNode struct {
	TypeName githubv4.String `graphql:"__typename"`
	Field    struct {
		ID       githubv4.String
		Name     githubv4.String
		DataType githubv4.String
	} `graphql:"... on ProjectV2Field"`
	SingleSelect struct {
		ID       githubv4.String
		Name     githubv4.String
		DataType githubv4.String
		Options  []struct {
			ID   githubv4.String
			Name githubv4.String
		}
	} `graphql:"... on ProjectV2SingleSelectField"`
	Iteration struct {
		ID            githubv4.String
		Name          githubv4.String
		DataType      githubv4.String
		Configuration struct {
			Iterations          []iterationNode
			CompletedIterations []iterationNode
		}
	} `graphql:"... on ProjectV2IterationField"`
}

type fieldsQuery struct {
	Node struct {
		TypeName  githubv4.String `graphql:"__typename"`
		ProjectV2 struct {
			Fields struct {
				Nodes []fieldNode
			} `graphql:"fields(first: 100)"`
		} `graphql:"... on ProjectV2"`
	} `graphql:"node(id: $id)"`
}

// ListFields returns the custom field definitions of the project with node ID projectID.
func ListFields(ctx context.Context, c *client.Client, projectID string) ([]Field, error) {
	op := client.NewQuery[fieldsQuery](map[string]interface{}{"id": client.ID(projectID)})
	r, err := client.Execute(ctx, c, op)
	if err != nil {
		return nil, err
	}
	if r.Node.TypeName != "ProjectV2" {
		return nil, fmt.Errorf("node %s is a %q, not a ProjectV2", projectID, r.Node.TypeName)
	}

	fields := make([]Field, 0, len(r.Node.ProjectV2.Fields.Nodes))
	for _, n := range r.Node.ProjectV2.Fields.Nodes {
		if f := n.toField(); f != nil {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func (n fieldNode) toField() Field {
	switch n.TypeName {
	case typeNameField:
		return &CommonField{ID: string(n.Field.ID), Name: string(n.Field.Name), DataType: DataType(n.Field.DataType)}
	case typeNameSingleSelect:
		f := &SingleSelectField{CommonField: CommonField{
			ID: string(n.SingleSelect.ID), Name: string(n.SingleSelect.Name), DataType: DataType(n.SingleSelect.DataType),
		}}
		for _, o := range n.SingleSelect.Options {
			f.Options = append(f.Options, Option{ID: string(o.ID), Name: string(o.Name)})
		}
		return f
	case typeNameIteration:
		f := &IterationField{CommonField: CommonField{
			ID: string(n.Iteration.ID), Name: string(n.Iteration.Name), DataType: DataType(n.Iteration.DataType),
		}}
		for _, it := range n.Iteration.Configuration.Iterations {
			f.Iterations = append(f.Iterations, it.toIteration(false))
		}
		for _, it := range n.Iteration.Configuration.CompletedIterations {
			f.Iterations = append(f.Iterations, it.toIteration(true))
		}
		return f
	}
	// Unknown member of the field union.
	return nil
}

func (it iterationNode) toIteration(completed bool) Iteration {
	return Iteration{
		ID:        string(it.ID),
		Title:     string(it.Title),
		StartDate: string(it.StartDate),
		Duration:  int(it.Duration),
		Completed: completed,
	}
}

// FieldInfo is a name-keyed lookup over a project's editable fields.
//
//	Fields[field] = field ID
//	SingleSelectOptions[field][option name] = option ID
//	Iterations[field][iteration title] = iteration ID
//	Types[field] = data type
type FieldInfo struct {
	Fields              map[string]string            `yaml:"fields" json:"fields"`
	SingleSelectOptions map[string]map[string]string `yaml:"single_select_options" json:"single_select_options"`
	Iterations          map[string]map[string]string `yaml:"iterations" json:"iterations"`
	Types               map[string]DataType          `yaml:"types" json:"types"`
}

// IndexFields builds a FieldInfo from field definitions. Fields whose type
// cannot be set through the API (assignees, labels, repository, ...) are left out.
func IndexFields(fields []Field) *FieldInfo {
	info := &FieldInfo{
		Fields:              map[string]string{},
		SingleSelectOptions: map[string]map[string]string{},
		Iterations:          map[string]map[string]string{},
		Types:               map[string]DataType{},
	}

	for _, f := range fields {
		if !f.FieldType().Editable() {
			continue
		}
		name := f.FieldName()
		info.Fields[name] = f.FieldID()
		info.Types[name] = f.FieldType()

		switch f := f.(type) {
		case *SingleSelectField:
			options := make(map[string]string, len(f.Options))
			for _, o := range f.Options {
				options[o.Name] = o.ID
			}
			info.SingleSelectOptions[name] = options
		case *IterationField:
			iterations := make(map[string]string, len(f.Iterations))
			for _, it := range f.Iterations {
				// Active iterations come first and win a title clash.
				if _, ok := iterations[it.Title]; !ok {
					iterations[it.Title] = it.ID
				}
			}
			info.Iterations[name] = iterations
		}
	}
	return info
}

// CollectFieldInfo lists the project's fields and indexes them by name.
func CollectFieldInfo(ctx context.Context, c *client.Client, projectID string) (*FieldInfo, error) {
	fields, err := ListFields(ctx, c, projectID)
	if err != nil {
		return nil, err
	}
	return IndexFields(fields), nil
}
