package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/signalworks/jlogic/internal/config"
)

func fp(v float64) *float64 { return &v }

// testJunction is small enough to verify by hand yet exercises every
// template: a three-stage vehicle cycle, an LRT entry chaining to the
// anchor, and a Lig stage.
func testJunction() *config.Junction {
	return &config.Junction{
		Name:          "KC04",
		VehicleAnchor: "A0",
		LRTAnchor:     "L39",
		Skeleton:      "A0 - B - C - A0",
		Stages: []config.StageProps{
			{Name: "A0", MinType: "min"},
			{Name: "B", MinType: "cpn", Detector: "Pc", WaterfallLevel: fp(1), SiblingPriority: fp(1)},
			{Name: "C", MinType: "cpn", Detector: "Phg", WaterfallLevel: fp(1), SiblingPriority: fp(2)},
			{Name: "L30", MinType: "min"},
			{Name: "L39", MinType: "min"},
			{Name: "A30", MinType: "min"},
		},
		Transitions: []config.Transition{
			{From: "A0", To: "B", Rest: "B-C-A0"},
			{From: "B", To: "C", Rest: "C-A0"},
			{From: "C", To: "A0", Rest: "end of skeleton"},
			{From: "B", To: "L30", Rest: "L30-C-A0"},
			{From: "L30", To: "C", Rest: "C-A0"},
			{From: "L30", To: "A30", Rest: "A30-C-A0"},
			{From: "A30", To: "C", Rest: "C-A0"},
			{From: "L30", To: "L39", Rest: "end"},
			{From: "L39", To: "A0", Rest: "end of skeleton"},
			{From: "C", To: "L39", Rest: "end"},
		},
	}
}

func compileFixture(t *testing.T) []Row {
	t.Helper()
	rows, err := New(testJunction()).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return rows
}

func TestCompileRowOrderAndTemplates(t *testing.T) {
	rows := compileFixture(t)
	if len(rows) != 10 {
		t.Fatalf("len(rows) = %d, want 10", len(rows))
	}
	wantLetters := []Template{
		TemplateA, TemplateA, TemplateA, TemplateB, TemplateD,
		TemplateE, TemplateF, TemplateG, TemplateD, TemplateC,
	}
	for i, row := range rows {
		if row.Seq != i+2 {
			t.Errorf("rows[%d].Seq = %d, want %d", i, row.Seq, i+2)
		}
		if row.Template != wantLetters[i] {
			t.Errorf("rows[%d] (%s -> %s) template = %q, want %q", i, row.From, row.To, row.Template, wantLetters[i])
		}
		if row.Err != nil {
			t.Errorf("rows[%d] (%s -> %s) failed: %v", i, row.From, row.To, row.Err)
		}
	}
}

func TestCompileLogic(t *testing.T) {
	tests := []struct {
		seq  int
		want string
	}{
		{2, "IsActive(Pc) and ((PL=0 and EG_A0=true) or (PL>0 and GT(A0) >= GTmin_A0 and ((AT_greater(1, ge, A0_Bcpn_jL30) and EG_A0=true) or (AT_less(1, le, A0_Bcpn_jL30) and WTG(A0_L30_DQ_Ccpn_A0)=false))) or WTG(A0_Bcpn_Ccpn_A0)=false)"},
		{3, "IsActive(Phg) and ((PL=0 and EG_B=true) or (PL>0 and GT(B) >= GTcpmin(B) and ((AT_greater(1, ge, B_Ccpn_jL39) and EG_B=true) or (AT_less(1, le, B_Ccpn_jL39) and WTG(B_L30_DQ_Ccpn_A0)=false))) or WTG(B_Ccpn_A0)=false)"},
		{4, "(PL=0 and EG_C=true) or (PL>0 and GT(C) >= GTcpmin(C) and ((EG_C=true and AT_greater(1, gt, C_A0min_jL30)) or (AT_less(1, le, C_A0min_jL30) and WTG(C_L39)=false))) or WTG(C_A0)=false"},
		{5, "WTG(B_L30_DQ_Ccpn_A0)=true and ((GT(B) >= GTcpmin(B) and AT_less(0, le, B_jL30)) or (EG_B=true and AT_less(0, le, B_Ccpn_jL39)))"},
		{6, "CloseL(C) and LIG(C)=false and IsActive(Phg) and IsInactive(Pc) and (AT_greater(1, ge, L30_Ccpn_jL39) or WTG(L30_DQ_Ccpn_A0)=false)"},
		{7, "CloseL(A30) and LIG(A30)=true and ((GT(L30) >= GTmin_L30 and AT_greater(1, ge, L30_A30_Ccpn_jL39)) or WTG(L30_DQ_A30_Ccpn_A0)=false)"},
		{8, "IsActive(Phg) and IsInactive(Pc)"},
		{9, "(EG_L30=true and AT_less(0, le, L30_jL39)) or (WTG(L30_L39)=true and AT_less(0, ls, L30_Ccpn_jL39))"},
		{10, "CloseL(A0) and LIG(A0)=false and (AT_greater(1, ge, L39_A0min_jL30) or WTG(L39_DQ_A0)=false)"},
		{11, "WTG(C_L39)=true and (GT(C) >= GTcpmin(C) and AT_less(0, le, C_jL39))"},
	}
	rows := compileFixture(t)
	for _, tt := range tests {
		row := rows[tt.seq-2]
		if row.Err != nil {
			t.Errorf("row %d (%s -> %s) failed: %v", tt.seq, row.From, row.To, row.Err)
			continue
		}
		if row.Logic != tt.want {
			t.Errorf("row %d (%s -> %s, template %s)\n got %q\nwant %q",
				tt.seq, row.From, row.To, row.Template, row.Logic, tt.want)
		}
	}
}

func TestCompileDeterministic(t *testing.T) {
	first := compileFixture(t)
	for i := 0; i < 5; i++ {
		if again := compileFixture(t); !reflect.DeepEqual(first, again) {
			t.Fatalf("compile run %d differs from the first", i+2)
		}
	}
}

func TestCompileRowIsolation(t *testing.T) {
	baseline := compileFixture(t)

	j := testJunction()
	j.Transitions[1].Rest = "B-A0" // rest must start with the target C
	rows, err := New(j).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	bad := rows[1]
	if bad.Err == nil {
		t.Fatal("malformed rest compiled cleanly, want row error")
	}
	if bad.Template != TemplateA {
		t.Errorf("failed row template = %q, want A still recorded", bad.Template)
	}
	if bad.Logic != "" {
		t.Errorf("failed row logic = %q, want empty", bad.Logic)
	}
	if !strings.HasPrefix(bad.Code(), "ERROR: ") {
		t.Errorf("failed row Code() = %q, want ERROR: prefix", bad.Code())
	}
	for i := range rows {
		if i == 1 {
			continue
		}
		if !reflect.DeepEqual(rows[i], baseline[i]) {
			t.Errorf("row %d changed by another row's failure:\n got %+v\nwant %+v", i, rows[i], baseline[i])
		}
	}
}

func TestCompileUnknownTransitionRowScoped(t *testing.T) {
	j := testJunction()
	j.Transitions = append(j.Transitions, config.Transition{From: "A0", To: "A30"})
	rows, err := New(j).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	last := rows[len(rows)-1]
	if last.Err == nil {
		t.Fatal("vehicle -> lig transition compiled cleanly, want row error")
	}
	var unknown *UnknownTransitionError
	if !errors.As(last.Err, &unknown) {
		t.Fatalf("row error %T, want *UnknownTransitionError", last.Err)
	}
	if unknown.FromClass != ClassVehicle || unknown.ToClass != ClassLig {
		t.Errorf("classes = %v -> %v, want vehicle -> lig", unknown.FromClass, unknown.ToClass)
	}
	if last.Template != "" {
		t.Errorf("unknown transition template = %q, want empty", last.Template)
	}
	for _, row := range rows[:len(rows)-1] {
		if row.Err != nil {
			t.Errorf("row %d (%s -> %s) failed alongside: %v", row.Seq, row.From, row.To, row.Err)
		}
	}
}

func TestCompileTopologyDeadEndFatal(t *testing.T) {
	j := testJunction()
	j.Transitions = j.Transitions[:8] // drop L39's outgoing transition
	rows, err := New(j).Compile()
	if rows != nil {
		t.Errorf("got %d rows despite dead end, want none", len(rows))
	}
	var topo *TopologyError
	if !errors.As(err, &topo) {
		t.Fatalf("Compile error %T (%v), want *TopologyError", err, err)
	}
	if topo.Stage != "L39" {
		t.Errorf("TopologyError.Stage = %q, want L39", topo.Stage)
	}
}

func TestTailString(t *testing.T) {
	c := New(testJunction())
	tests := []struct {
		tail []string
		want string
	}{
		{nil, ""},
		{[]string{"A0"}, "A0"},
		{[]string{"B", "C", "A0"}, "Bcpn_Ccpn_A0"},
		{[]string{"L30", "C", "A0"}, "L30_Ccpn_A0"},
		{[]string{"A30", "C", "A0"}, "A30_Ccpn_A0"},
		{[]string{"DQ", "C", "A0"}, "DQ_Ccpn_A0"},
		{[]string{"Z", "A0"}, "Zmin_A0"},
	}
	for _, tt := range tests {
		if got := c.tailString(tt.tail); got != tt.want {
			t.Errorf("tailString(%v) = %q, want %q", tt.tail, got, tt.want)
		}
	}
}

func TestGTTerm(t *testing.T) {
	c := New(testJunction())
	if got := c.gtTerm("B"); got != "GTcpmin(B)" {
		t.Errorf("gtTerm(B) = %q, want GTcpmin(B)", got)
	}
	if got := c.gtTerm("A0"); got != "GTmin_A0" {
		t.Errorf("gtTerm(A0) = %q, want GTmin_A0", got)
	}
	if got := c.gtTerm("Z"); got != "GTmin_Z" {
		t.Errorf("gtTerm(Z) = %q, want GTmin_Z", got)
	}

	saf := New(&config.Junction{Stages: []config.StageProps{{Name: "S", MinType: "saf"}}})
	if got := saf.gtTerm("S"); got != "GTmin_S" {
		t.Errorf("gtTerm(S saf) = %q, want GTmin_S", got)
	}
}

func TestTransitionTail(t *testing.T) {
	tail, err := transitionTail(config.Transition{From: "B", To: "C", Rest: "C-A0"})
	if err != nil || !reflect.DeepEqual(tail, []string{"A0"}) {
		t.Errorf("tail = %v, %v, want [A0], nil", tail, err)
	}

	tail, err = transitionTail(config.Transition{From: "B", To: "C", Rest: "end of skeleton"})
	if err != nil || tail != nil {
		t.Errorf("tail = %v, %v, want nil, nil", tail, err)
	}

	tail, err = transitionTail(config.Transition{From: "B", To: "C", Rest: "C"})
	if err != nil || len(tail) != 0 {
		t.Errorf("tail = %v, %v, want empty, nil", tail, err)
	}

	_, err = transitionTail(config.Transition{From: "B", To: "C", Rest: "B-A0"})
	if err == nil || !strings.Contains(err.Error(), `"B"`) {
		t.Errorf("err = %v, want malformed rest naming B", err)
	}
}

func TestBypassPath(t *testing.T) {
	c := New(&config.Junction{
		VehicleAnchor: "A0",
		LRTAnchor:     "L39",
		Transitions: []config.Transition{
			{From: "B", To: "L30", Rest: "end"},
			{From: "L30", To: "C", Rest: "end"},
		},
	})
	// The anchor needs no queue discharge; a recorded transition with an
	// empty tail falls back to the vehicle anchor; an unrecorded one is
	// derived from the LRT's first vehicle successor.
	tests := []struct {
		from, lrt string
		want      string
	}{
		{"B", "L39", "L39"},
		{"B", "L30", "L30_DQ_A0"},
		{"A0", "L30", "L30_DQ_Cmin_A0"},
		{"B", "L20", "L20_DQ_A0"},
	}
	for _, tt := range tests {
		got, err := c.bypassPath(tt.from, tt.lrt)
		if err != nil {
			t.Errorf("bypassPath(%s, %s): %v", tt.from, tt.lrt, err)
			continue
		}
		if got != tt.want {
			t.Errorf("bypassPath(%s, %s) = %q, want %q", tt.from, tt.lrt, got, tt.want)
		}
	}
}

func TestNextVehicleInSkeleton(t *testing.T) {
	c := New(&config.Junction{
		VehicleAnchor: "A0",
		LRTAnchor:     "L39",
		Skeleton:      "A0 - B - C - A0",
		Transitions: []config.Transition{
			{From: "L30", To: "C"},
			{From: "L30", To: "B"},
			{From: "L31", To: "Z"},
			{From: "L31", To: "C"},
			{From: "L32", To: "A0"},
			{From: "L32", To: "L39"},
		},
	})
	// Adjacency says C first, the skeleton says B comes first in the cycle.
	if got := c.nextVehicleInSkeleton("L30"); got != "B" {
		t.Errorf("nextVehicleInSkeleton(L30) = %q, want B", got)
	}
	// Z is not in the skeleton, so it sorts behind C.
	if got := c.nextVehicleInSkeleton("L31"); got != "C" {
		t.Errorf("nextVehicleInSkeleton(L31) = %q, want C", got)
	}
	// Anchor and LRT successors are not candidates; fall back to the anchor.
	if got := c.nextVehicleInSkeleton("L32"); got != "A0" {
		t.Errorf("nextVehicleInSkeleton(L32) = %q, want A0", got)
	}
}

func TestCompileNoLRTReachableFailsRow(t *testing.T) {
	j := &config.Junction{
		VehicleAnchor: "A0",
		LRTAnchor:     "L39",
		Skeleton:      "A0 - B - A0",
		Stages: []config.StageProps{
			{Name: "A0", MinType: "min"},
			{Name: "B", MinType: "min"},
		},
		Transitions: []config.Transition{
			{From: "A0", To: "B", Rest: "B-A0"},
			{From: "B", To: "A0", Rest: "end"},
		},
	}
	rows, err := New(j).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, row := range rows {
		if row.Err == nil {
			t.Errorf("row %d (%s -> %s) compiled with no LRT in the graph, want error", row.Seq, row.From, row.To)
		}
	}
}
