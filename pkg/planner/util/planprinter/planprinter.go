// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package planprinter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	cascadesbase "github.com/pingcap/planrule/pkg/planner/cascades/base"
	"github.com/pingcap/planrule/pkg/planner/core"
	"github.com/pingcap/planrule/pkg/planner/core/base"
	"github.com/xlab/treeprint"
)

const indentUnit = "    "

// Options controls how a plan is printed.
type Options struct {
	// Indent is the number of indentation levels prefixed to every line.
	Indent int
	// PrintStats annotates every node with its statistics and costs.
	PrintStats bool
	// Lookup resolves group references. Without it they are printed as is.
	Lookup cascadesbase.Lookup
}

// TextLogicalPlan renders plan as a tree, one node per line.
func TextLogicalPlan(plan *core.Plan, opts Options) (string, error) {
	root := treeprint.New()
	if err := addNode(root, plan, plan.Root(), opts); err != nil {
		return "", err
	}
	// drop the anonymous root line.
	text := strings.TrimPrefix(root.String(), ".\n")
	text = strings.TrimRight(text, "\n")
	if opts.Indent <= 0 {
		return text, nil
	}
	prefix := strings.Repeat(indentUnit, opts.Indent)
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n"), nil
}

func addNode(tree treeprint.Tree, plan *core.Plan, node base.PlanNode, opts Options) error {
	if _, ok := node.(*cascadesbase.GroupReference); ok && opts.Lookup != nil {
		resolved, err := opts.Lookup.Resolve(node)
		if err != nil {
			return err
		}
		node = resolved
	}
	branch := tree.AddBranch(nodeLine(plan, node, opts))
	for _, child := range node.Children() {
		if err := addNode(branch, plan, child, opts); err != nil {
			return err
		}
	}
	return nil
}

func nodeLine(plan *core.Plan, node base.PlanNode, opts Options) string {
	var buf strings.Builder
	buf.WriteString(node.TP())
	if info := node.ExplainInfo(); info != "" {
		buf.WriteString("[" + info + "]")
	}
	buf.WriteString(" => [")
	for i, sym := range node.OutputSymbols() {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(sym.Name())
		buf.WriteString(":")
		if tp, ok := plan.Types().Get(sym); ok {
			buf.WriteString(tp.String())
		} else {
			buf.WriteString("?")
		}
	}
	buf.WriteString("]")
	if opts.PrintStats {
		if annotation := statsAnnotation(plan, node); annotation != "" {
			buf.WriteString(" ")
			buf.WriteString(annotation)
		}
	}
	return buf.String()
}

func statsAnnotation(plan *core.Plan, node base.PlanNode) string {
	sc := plan.StatsAndCosts()
	stats, hasStats := sc.Stats(node.ID())
	c, hasCost := sc.Cost(node.ID())
	if !hasStats && !hasCost {
		return ""
	}
	parts := make([]string, 0, 4)
	if hasStats {
		size := stats.OutputSizeInBytes(node.OutputSymbols(), plan.Types())
		parts = append(parts, fmt.Sprintf("rows: %s (%s)", formatDouble(stats.OutputRowCount), formatBytes(size)))
	}
	if hasCost {
		parts = append(parts,
			"cpu: "+formatDouble(c.CPU),
			"memory: "+formatBytes(c.Memory),
			"network: "+formatBytes(c.Network))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatDouble(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "?"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

var byteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB"}

func formatBytes(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "?"
	}
	return units.CustomSize("%.4g%s", v, 1024, byteUnits)
}
