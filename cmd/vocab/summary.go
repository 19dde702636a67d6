package main

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/heartmarshall/vocabmeanings/internal/service/publisher"
	"github.com/heartmarshall/vocabmeanings/internal/service/resolver"
	"github.com/heartmarshall/vocabmeanings/internal/service/reviewer"
)

// wordListLimit caps how many words are printed after a summary.
const wordListLimit = 20

func newTable(out io.Writer, headers ...interface{}) table.Table {
	return table.New(headers...).WithWriter(out)
}

func printResolveSummary(out io.Writer, res resolver.Result) {
	tbl := newTable(out, "Source", "Entries")
	tbl.AddRow("local table", res.LocalHits)
	tbl.AddRow("dictionary API", res.RemoteHits)
	tbl.AddRow("needs review", res.Flagged)
	tbl.AddRow("total updated", res.Updated)
	tbl.Print()
	fmt.Fprintf(out, "\nAPI calls: %d\n", res.RemoteCalls)
}

func printReviewSummary(out io.Writer, res reviewer.Result, v reviewer.Verification) {
	tbl := newTable(out, "Review", "Entries")
	tbl.AddRow("fixed", res.Fixed)
	tbl.AddRow("not in review table", len(res.Unresolved))
	tbl.AddRow("markers remaining", v.Count())
	tbl.AddRow("empty meanings", len(v.Empty))
	tbl.Print()
}

func printVerification(out io.Writer, v reviewer.Verification) {
	tbl := newTable(out, "Check", "Entries")
	tbl.AddRow("markers remaining", v.Count())
	tbl.AddRow("empty meanings", len(v.Empty))
	tbl.Print()
	if v.OK() {
		fmt.Fprintln(out, "\nAll words have meanings.")
	}
}

func printShardSummary(out io.Writer, dir string, groups []publisher.GroupSummary) {
	tbl := newTable(out, "Letter", "Words", "File")
	total := 0
	for _, g := range groups {
		tbl.AddRow(g.Label, g.Count, g.File+".json")
		total += g.Count
	}
	tbl.Print()
	fmt.Fprintf(out, "\n%d words in %d files under %s\n", total, len(groups), dir)
}

func printTemplateOutcomes(out io.Writer, outcomes []publisher.TemplateOutcome) {
	tbl := newTable(out, "Template", "Status", "Slots", "Error")
	for _, o := range outcomes {
		msg := ""
		if o.Err != nil {
			msg = o.Err.Error()
		}
		tbl.AddRow(o.Path, o.Status, o.Slots, msg)
	}
	tbl.Print()
}

func printWordList(out io.Writer, title string, words []string) {
	if len(words) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(words))
	for i, w := range words {
		if i == wordListLimit {
			fmt.Fprintf(out, "  ... and %d more\n", len(words)-wordListLimit)
			break
		}
		fmt.Fprintf(out, "  - %s\n", w)
	}
}
