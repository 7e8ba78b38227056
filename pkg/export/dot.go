// Package export renders the template reference graph for inspection.
//
// Lanes reference other templates as segments, forming a directed graph
// over template ids. The graph is not guaranteed acyclic and DOT handles
// cycles natively, so export performs no cycle breaking: a self-referencing
// lane simply draws an edge back to itself.
package export

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tannerbroberts/abouttime/pkg/template"
)

// Options configures reference-graph rendering.
type Options struct {
	// Detailed includes durations and segment offsets in labels.
	// When false, only the intent is shown.
	Detailed bool
}

// ToDOT converts a template store to Graphviz DOT format.
// Lane templates are drawn as rounded boxes, atomic templates as plain
// boxes, and dangling references as dashed grey placeholders. One edge is
// emitted per segment, so a lane referencing the same template twice draws
// two edges.
func ToDOT(store *template.Store, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph templates {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	dangling := map[string]bool{}
	for _, t := range store.All() {
		attrs := fmtAttrs(t, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
		for _, seg := range t.Segments {
			if _, ok := store.Lookup(seg.TemplateID); !ok {
				dangling[seg.TemplateID] = true
			}
		}
	}

	// Sorted so repeated exports of the same library are byte-identical.
	ids := make([]string, 0, len(dangling))
	for id := range dangling {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"filled,dashed\", fillcolor=lightgrey];\n",
			id, id+"\n(missing)")
	}

	buf.WriteString("\n")
	for _, t := range store.All() {
		for _, seg := range t.Segments {
			if opts.Detailed {
				fmt.Fprintf(&buf, "  %q -> %q [label=\"+%dms\"];\n", t.ID, seg.TemplateID, seg.Offset)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", t.ID, seg.TemplateID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(t template.Template, detailed bool) []string {
	label := t.Intent
	if detailed {
		label = fmt.Sprintf("%s\n%dms", t.Intent, t.EstimatedDuration)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if t.IsLane() {
		attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightyellow")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
