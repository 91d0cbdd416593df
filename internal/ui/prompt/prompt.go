// Package prompt asks for missing command arguments with huh forms.
package prompt

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
)

var (
	errNoHosts  = errors.New("no hosts available to assign")
	errNoGroups = errors.New("no host groups staged, select a blueprint first")
)

// Assignment holds the host and group of a "cluster assign" call.
type Assignment struct {
	Host  string
	Group string
}

// AskAssignment prompts for whichever of a.Host and a.Group is empty.
func AskAssignment(ctx context.Context, a *Assignment, hosts, groups []string) error {
	fields, err := assignmentFields(a, hosts, groups)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title("Host Assignment"),
	).RunWithContext(ctx)
}

func assignmentFields(a *Assignment, hosts, groups []string) ([]huh.Field, error) {
	var fields []huh.Field

	if a.Host == "" {
		if len(hosts) == 0 {
			return nil, errNoHosts
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Host").
			Description("Host to add to the blueprint").
			Options(huh.NewOptions(hosts...)...).
			Value(&a.Host))
	}

	if a.Group == "" {
		if len(groups) == 0 {
			return nil, errNoGroups
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Host Group").
			Description("Host group of the staged blueprint").
			Options(huh.NewOptions(groups...)...).
			Value(&a.Group))
	}

	return fields, nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).RunWithContext(ctx)
	return ok, err
}
