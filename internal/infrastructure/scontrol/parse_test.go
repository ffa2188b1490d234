package scontrol

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

func TestParseRecord(t *testing.T) {
	got := parseRecord("NodeName=c1 OS=Linux 5.14 #1 SMP State=IDLE Reason=disk failure [root@2024] Nodes=c[1-2] CPU_IDs=0-1 Nodes=c3 CPU_IDs=4")
	want := record{
		{"NodeName", "c1"},
		{"OS", "Linux 5.14 #1 SMP"},
		{"State", "IDLE"},
		{"Reason", "disk failure [root@2024]"},
		{"Nodes", "c[1-2]"},
		{"CPU_IDs", "0-1"},
		{"Nodes", "c3"},
		{"CPU_IDs", "4"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(pair{})); diff != "" {
		t.Fatalf("parseRecord mismatch (-want +got):\n%s", diff)
	}
	if v, _ := got.get("Nodes"); v != "c[1-2]" {
		t.Errorf("get(Nodes) = %q, want first value", v)
	}
}

func TestParseRecordTRESValue(t *testing.T) {
	r := parseRecord("NodeName=g1 AllocTRES=cpu=4,mem=2G,gres/gpu=1")
	v, ok := r.get("AllocTRES")
	if !ok || v != "cpu=4,mem=2G,gres/gpu=1" {
		t.Fatalf("AllocTRES = %q, %v", v, ok)
	}
}

func TestParseNodeWithoutName(t *testing.T) {
	if _, _, err := parseNode(parseRecord("State=IDLE CPUTot=4")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseTimeLimit(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"30", 30},
		{"00:30", 1},
		{"10:00", 10},
		{"01:00:00", 60},
		{"1-00:00:00", 1440},
		{"2-12", 3600},
		{"1-02:03", 1563},
		{"UNLIMITED", domain.TimeLimitUnlimited},
		{"Partition_Limit", domain.TimeLimitUnlimited},
		{"", domain.TimeLimitUnlimited},
		{"1:2:3:4", domain.TimeLimitUnlimited},
	}
	for _, c := range cases {
		if got := parseTimeLimit(c.in); got != c.want {
			t.Errorf("parseTimeLimit(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseLoad(t *testing.T) {
	cases := map[string]int{"0.50": 50, "12.34": 1234, "N/A": -1, "": -1}
	for in, want := range cases {
		if got := parseLoad(in); got != want {
			t.Errorf("parseLoad(%q) = %d, want %d", in, got, want)
		}
	}
}
