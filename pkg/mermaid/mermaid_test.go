package mermaid

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/flow"
)

func TestGenerateClassifiedGroups(t *testing.T) {
	flows := []flow.Flow{
		{From: "P-fra-sysk001", To: "P-fra-idx002"},
		{From: "P-fra-idx002", To: "P-fra-sysk001"},
	}

	got, err := Generate(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := strings.Join([]string{
		"flowchart TD",
		"    subgraph Indexer - fra",
		`        "P-fra-idx002"["P-fra-idx002 Indexer"]`,
		"    end",
		"    subgraph Syslog koncernet - fra",
		`        "P-fra-sysk001"["P-fra-sysk001 Syslog koncernet"]`,
		"    end",
		`    "P-fra-sysk001" --> "P-fra-idx002"`,
		`    "P-fra-idx002" --> "P-fra-sysk001"`,
	}, "\n")

	if got != want {
		t.Errorf("diagram mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	flows := []flow.Flow{
		{From: "gateway1", To: "P-fra-sysk001"},
		{From: "P-fra-sysk001", To: "P-ams-idx002"},
		{From: "P-ams-idx002", To: "archive9"},
		{From: "gateway1", To: "P-fra-sysk001"},
	}

	first, err := Generate(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first != second {
		t.Error("identical inputs produced different diagrams")
	}
}

func TestCollapseLargeGroup(t *testing.T) {
	var flows []flow.Flow
	// Seven syslog hosts in one data center, chained together.
	for i := 1; i < 7; i++ {
		flows = append(flows, flow.Flow{
			From: fmt.Sprintf("P-fra-sysk%03d", i),
			To:   fmt.Sprintf("P-fra-sysk%03d", i+1),
		})
	}
	flows = append(flows,
		flow.Flow{From: "gateway1", To: "P-fra-sysk003"},
		flow.Flow{From: "P-fra-sysk004", To: "P-fra-idx001"},
	)

	res, err := Build(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := strings.Join([]string{
		"flowchart TD",
		"    subgraph Indexer - fra",
		`        "P-fra-idx001"["P-fra-idx001 Indexer"]`,
		"    end",
		`    "Syslog_koncernet_fra"["Syslog koncernet (fra)"]`,
		`    "gateway1"["gateway1 host"]`,
		`    "gateway1" --> "Syslog_koncernet_fra"`,
		`    "Syslog_koncernet_fra" --> "P-fra-idx001"`,
	}, "\n")

	if res.Text != want {
		t.Errorf("diagram mismatch\ngot:\n%s\nwant:\n%s", res.Text, want)
	}

	if res.Stats.Collapsed != 1 {
		t.Errorf("Collapsed = %d, want 1", res.Stats.Collapsed)
	}
	// The six intra-group chain edges collapse to self-loops and disappear.
	if res.Stats.EdgesDropped != 6 {
		t.Errorf("EdgesDropped = %d, want 6", res.Stats.EdgesDropped)
	}
	for i := 1; i <= 7; i++ {
		member := fmt.Sprintf("P-fra-sysk%03d", i)
		if strings.Contains(res.Text, `"`+member+`"`) {
			t.Errorf("collapsed member %s still declared", member)
		}
	}
}

func TestCollapseThresholdBoundary(t *testing.T) {
	groupOf := func(n int) []flow.Flow {
		var flows []flow.Flow
		for i := 1; i <= n; i++ {
			flows = append(flows, flow.Flow{
				From: fmt.Sprintf("P-fra-sysk%03d", i),
				To:   "sink1",
			})
		}
		return flows
	}

	opts := DefaultOptions()
	opts.CollapseThreshold = 5

	// Exactly at the threshold: rendered as a block.
	atLimit, err := Generate(groupOf(5), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(atLimit, "subgraph Syslog koncernet - fra") {
		t.Errorf("group of 5 should stay a block:\n%s", atLimit)
	}
	if strings.Contains(atLimit, "Syslog_koncernet_fra") {
		t.Errorf("group of 5 should not collapse:\n%s", atLimit)
	}

	// One past the threshold: collapsed.
	overLimit, err := Generate(groupOf(6), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(overLimit, `"Syslog_koncernet_fra"["Syslog koncernet (fra)"]`) {
		t.Errorf("group of 6 should collapse:\n%s", overLimit)
	}
	if strings.Contains(overLimit, "subgraph") {
		t.Errorf("collapsed group should not emit a block:\n%s", overLimit)
	}
}

func TestCollapseThresholdZero(t *testing.T) {
	opts := DefaultOptions()
	opts.CollapseThreshold = 0

	got, err := Generate([]flow.Flow{{From: "P-fra-sysk001", To: "gateway1"}}, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := strings.Join([]string{
		"flowchart TD",
		`    "Syslog_koncernet_fra"["Syslog koncernet (fra)"]`,
		`    "gateway1"["gateway1 host"]`,
		`    "Syslog_koncernet_fra" --> "gateway1"`,
	}, "\n")

	if got != want {
		t.Errorf("diagram mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSelfLoopSuppressed(t *testing.T) {
	got, err := Generate([]flow.Flow{{From: "a", To: "a"}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := "flowchart TD\n    \"a\"[\"a host\"]"
	if got != want {
		t.Errorf("diagram = %q, want %q", got, want)
	}
}

func TestDuplicateEdges(t *testing.T) {
	flows := []flow.Flow{
		{From: "a", To: "b"},
		{From: "a", To: "b"},
		{From: "b", To: "a"},
		{From: "a", To: "b"},
	}

	res, err := Build(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Stats.Edges != 2 {
		t.Errorf("Edges = %d, want 2", res.Stats.Edges)
	}
	if res.Stats.EdgesDropped != 2 {
		t.Errorf("EdgesDropped = %d, want 2", res.Stats.EdgesDropped)
	}
	// First occurrence wins the emission order.
	if strings.Index(res.Text, `"a" --> "b"`) > strings.Index(res.Text, `"b" --> "a"`) {
		t.Errorf("edge order not first-seen:\n%s", res.Text)
	}
}

func TestNodeCoverage(t *testing.T) {
	var flows []flow.Flow
	for i := 1; i <= 7; i++ {
		flows = append(flows, flow.Flow{
			From: fmt.Sprintf("P-fra-sysk%03d", i),
			To:   "P-ams-idx001",
		})
	}
	flows = append(flows, flow.Flow{From: "gateway1", To: "P-ams-idx001"})

	res, err := Build(flows, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Every node is covered by exactly one declaration: the collapsed group
	// covers its seven members, the indexer gets a block, the gateway is
	// standalone.
	declarations := 0
	for _, line := range strings.Split(res.Text, "\n") {
		if strings.Contains(line, "[") {
			declarations++
		}
	}
	if declarations != 3 {
		t.Errorf("declarations = %d, want 3:\n%s", declarations, res.Text)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, DefaultOptions()); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("empty flows err = %v, want EMPTY_INPUT", err)
	}

	opts := DefaultOptions()
	opts.CollapseThreshold = -1
	if _, err := Build([]flow.Flow{{From: "a", To: "b"}}, opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative threshold err = %v, want INVALID_INPUT", err)
	}
}

func TestGroupNodes(t *testing.T) {
	nodes := []string{
		"P-fra-sysk002",
		"P-fra-sysk001",
		"P-ams-sysk001",
		"P-fra-idx001",
		"p-ams-web001", // unmapped function code
		"gateway1",     // unclassified
	}

	got := groupNodes(nodes, DefaultFunctionLabels())

	want := map[string]map[string][]string{
		"Syslog koncernet": {
			"fra": {"P-fra-sysk001", "P-fra-sysk002"},
			"ams": {"P-ams-sysk001"},
		},
		"Indexer": {
			"fra": {"P-fra-idx001"},
		},
		"web": {
			"ams": {"p-ams-web001"},
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("groupNodes = %v, want %v", got, want)
	}
}

func TestNodeLabel(t *testing.T) {
	labels := DefaultFunctionLabels()

	tests := []struct {
		name string
		node string
		want string
	}{
		{name: "MappedFunction", node: "P-fra-sysk001", want: "P-fra-sysk001 Syslog koncernet"},
		{name: "MappedIndexer", node: "P-fra-idx002", want: "P-fra-idx002 Indexer"},
		{name: "UnmappedWithSyslogMarker", node: "P-fra-sysq001", want: "P-fra-sysq001 Syslog"},
		{name: "SyslogMarkerUnclassified", node: "central-syslog", want: "central-syslog Syslog"},
		{name: "IndexMarkerUnclassified", node: "idx-master", want: "idx-master indexer"},
		{name: "MarkerCaseInsensitive", node: "SYSLOG9", want: "SYSLOG9 Syslog"},
		{name: "ClassifiedUnmappedNoMarker", node: "p-ams-web001", want: "p-ams-web001 host"},
		{name: "UnclassifiedNoMarker", node: "gateway1", want: "gateway1 host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeLabel(tt.node, labels); got != tt.want {
				t.Errorf("nodeLabel(%q) = %q, want %q", tt.node, got, tt.want)
			}
		})
	}
}
