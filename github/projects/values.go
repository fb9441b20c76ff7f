package projects

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"github.com/vavalomi/ghprojects/github/client"
)

// DateLayout is the layout accepted for DATE field values.
const DateLayout = "2006-01-02"

type updateFieldValueMutation struct {
	UpdateProjectV2ItemFieldValue struct {
		ProjectV2Item struct {
			ID githubv4.String
		}
	} `graphql:"updateProjectV2ItemFieldValue(input: $input)"`
}

func TextValue(text string) githubv4.ProjectV2FieldValue {
	return githubv4.ProjectV2FieldValue{Text: githubv4.NewString(githubv4.String(text))}
}

func NumberValue(n float64) githubv4.ProjectV2FieldValue {
	return githubv4.ProjectV2FieldValue{Number: githubv4.NewFloat(githubv4.Float(n))}
}

// DateValue keeps only the calendar date of t.
func DateValue(t time.Time) githubv4.ProjectV2FieldValue {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return githubv4.ProjectV2FieldValue{Date: githubv4.NewDate(githubv4.Date{Time: d})}
}

func SingleSelectValue(optionID string) githubv4.ProjectV2FieldValue {
	return githubv4.ProjectV2FieldValue{SingleSelectOptionID: githubv4.NewString(githubv4.String(optionID))}
}

func IterationValue(iterationID string) githubv4.ProjectV2FieldValue {
	return githubv4.ProjectV2FieldValue{IterationID: githubv4.NewString(githubv4.String(iterationID))}
}

// SetFieldValue sets fieldID of the project item itemID and returns the item's node ID.
func SetFieldValue(ctx context.Context, c *client.Client, projectID, itemID, fieldID string, value githubv4.ProjectV2FieldValue) (string, error) {
	input := githubv4.UpdateProjectV2ItemFieldValueInput{
		ProjectID: githubv4.ID(projectID),
		ItemID:    githubv4.ID(itemID),
		FieldID:   githubv4.ID(fieldID),
		Value:     value,
	}
	r, err := client.Execute(ctx, c, client.NewMutation[updateFieldValueMutation](input, nil))
	if err != nil {
		return "", err
	}
	return string(r.UpdateProjectV2ItemFieldValue.ProjectV2Item.ID), nil
}

// Value converts a human-readable value for the named field into a field
// value: option names and iteration titles are looked up, numbers and dates
// (DateLayout) are parsed, and text is passed through.
func (fi *FieldInfo) Value(field, raw string) (githubv4.ProjectV2FieldValue, error) {
	dataType, ok := fi.Types[field]
	if !ok {
		return githubv4.ProjectV2FieldValue{}, fmt.Errorf("unknown or read-only field %q", field)
	}

	switch dataType {
	case DataTypeText, DataTypeTitle:
		return TextValue(raw), nil
	case DataTypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return githubv4.ProjectV2FieldValue{}, fmt.Errorf("field %q: invalid number %q: %w", field, raw, err)
		}
		return NumberValue(n), nil
	case DataTypeDate:
		t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
		if err != nil {
			return githubv4.ProjectV2FieldValue{}, fmt.Errorf("field %q: invalid date %q: %w", field, raw, err)
		}
		return DateValue(t), nil
	case DataTypeSingleSelect:
		id, ok := fi.SingleSelectOptions[field][raw]
		if !ok {
			return githubv4.ProjectV2FieldValue{}, fmt.Errorf("field %q has no option %q", field, raw)
		}
		return SingleSelectValue(id), nil
	case DataTypeIteration:
		id, ok := fi.Iterations[field][raw]
		if !ok {
			return githubv4.ProjectV2FieldValue{}, fmt.Errorf("field %q has no iteration %q", field, raw)
		}
		return IterationValue(id), nil
	}
	return githubv4.ProjectV2FieldValue{}, fmt.Errorf("field %q has unsupported type %s", field, dataType)
}
