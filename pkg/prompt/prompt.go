// Package prompt asks the user for the choices a command cannot make on its
// own: which link group to join and whether to dissolve a pair.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// Group is an existing link group offered to a pending link.
type Group struct {
	ID      int
	Members []*entry.Entry
}

// Prompt talks to the terminal through promptui. Nil streams mean the
// process's stdin and stdout.
type Prompt struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

type item struct {
	Name    string
	Detail  string
	Choice  linking.Choice
	Members []string
}

func items(groups []Group) []item {
	out := make([]item, 0, len(groups)+2)
	for _, g := range groups {
		titles := make([]string, len(g.Members))
		for i, e := range g.Members {
			titles[i] = fmt.Sprintf("%s %s", clock(e.Date), e.Title())
		}
		out = append(out, item{
			Name:    fmt.Sprintf("group %d", g.ID),
			Detail:  strings.Join(titles, ", "),
			Choice:  linking.Join(g.ID),
			Members: titles,
		})
	}
	out = append(out,
		item{Name: "new group", Detail: "start a new group and pick its partner next", Choice: linking.NewGroup},
		item{Name: "cancel", Detail: "leave the entry unlinked", Choice: linking.Cancel},
	)
	return out
}

func clock(date string) string {
	_, c, ok := strings.Cut(date, " ")
	if !ok {
		return date
	}
	return c
}

// ChooseGroup lets the user join one of groups, start a new group or cancel.
func (p *Prompt) ChooseGroup(day string, groups []Group) (linking.Choice, error) {
	list := items(groups)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . | magenta }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Detail | cyan }}",
		Inactive: "   {{ .Name }} {{ .Detail | faint }}",
		Selected: "{{ .Name | bold }}",
		Details: `
--------- Members ----------
{{ range .Members }}{{ . }}
{{ end }}`,
	}

	searcher := func(input string, index int) bool {
		it := list[index]
		name := strings.ReplaceAll(strings.ToLower(it.Name+it.Detail), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     fmt.Sprintf("Link into which group of %s", day),
		Items:     list,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	i, _, err := sel.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return linking.Cancel, nil
		}
		return linking.Cancel, fmt.Errorf("prompt failed: %w", err)
	}
	return list[i].Choice, nil
}

// Confirm asks a yes/no question; an empty answer is no.
func (p *Prompt) Confirm(label string) (bool, error) {
	validate := func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} [y/N] : ",
		Valid:   "{{ . | green }} [y/N] : ",
		Invalid: "{{ . | red }} [y/N] : ",
		Success: "{{ . | bold }} : ",
	}

	q := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	result, err := q.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// Ask reads a line of text; def is used when the answer is empty. required
// rejects an empty answer when there is no default.
func (p *Prompt) Ask(label, def string, required bool) (string, error) {
	validate := func(input string) error {
		if required && len(input) == 0 && len(def) == 0 {
			return errors.New("empty")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	q := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	result, err := q.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if result == "" {
		result = def
	}
	return strings.TrimSpace(result), nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No and Ja/Nein.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes", "j", "J", "ja", "Ja", "JA":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No", "nein", "Nein", "NEIN":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
