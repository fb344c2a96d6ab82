package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/timeutil"
)

var tagMeaning = map[entry.Tag]string{
	entry.TagMeal:       "meal without complaints",
	entry.TagOther:      "anything else",
	entry.TagSymptom:    "complaints were logged",
	entry.TagSupplement: "supplement or medication",
	entry.TagStool:      `stool log (food starts with "Stuhl")`,
	entry.TagHistory:    "medical history note",
}

// Legend prints the tags in category order with their meaning.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tag"), bold.Sprint("Meaning"), bold.Sprint("Blurred"))
	for _, t := range entry.Tags() {
		blurred := ""
		if pp.blurred(t) {
			blurred = "yes"
		}
		tbl.AddRow(pp.Palette.Tag(t, pp.blurred(t)), tagMeaning[t], blurred)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints a window summary: entries per tag and symptom frequencies.
func (pp *PrettyPrint) Report(r app.ReportResult, label string) {
	pp.Title(fmt.Sprintf("%s to %s (%s)", entry.FormatDisplay(r.Since), entry.FormatDisplay(r.Until), label))
	if r.Total == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), " no entries")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tag"), bold.Sprint("Entries"))
	for _, s := range r.Sections {
		tbl.AddRow(pp.Palette.Tag(s.Tag, pp.blurred(s.Tag)), len(s.Entries))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if len(r.Symptoms) == 0 {
		return
	}
	pp.NewLine()
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Symptom"), bold.Sprint("Count"), bold.Sprint("Max"), bold.Sprint("Avg onset"), bold.Sprint("After"))
	for _, s := range r.Symptoms {
		after := ""
		if !pp.blurred(entry.TagSymptom) {
			after = fmt.Sprint(s.ExampleMeals)
		}
		tbl.AddRow(s.Text, s.Count, strength(s.MaxStrength), timeutil.FormatOnset(s.AverageOnset), after)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
