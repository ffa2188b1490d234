package tres

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

func TestParseAlloc(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Allocation
	}{
		{"cpu=4,mem=2048M,gres/gpu=1", domain.Allocation{CPUs: 4, MemMiB: 2048, GPUs: 1}},
		{"cpu=4,mem=2G", domain.Allocation{CPUs: 4, MemMiB: 2048}},
		{"gres/gpu=1,mem=2048M,cpu=4", domain.Allocation{CPUs: 4, MemMiB: 2048, GPUs: 1}},
		{"mem=2G,cpu=4", domain.Allocation{CPUs: 4, MemMiB: 2048}},
		{"cpu=8,mem=1.5G,node=1,billing=8,gpu=2", domain.Allocation{CPUs: 8, MemMiB: 1536, GPUs: 2}},
		{"cpu=2,mem=4096", domain.Allocation{CPUs: 2, MemMiB: 4096}},
		{"cpu=2,mem=2097152K", domain.Allocation{CPUs: 2, MemMiB: 2048}},
		{"cpu=64,mem=1T", domain.Allocation{CPUs: 64, MemMiB: 1024 * 1024}},
		{"cpu=4,mem=8G,gres/gpu=2,gres/gpu:a100=2", domain.Allocation{CPUs: 4, MemMiB: 8192, GPUs: 2}},
		{"cpu=4,gres/gpu:a100=1,gres/gpu:v100=2", domain.Allocation{CPUs: 4, GPUs: 3}},
		{"mem=2G", domain.Allocation{MemMiB: 2048}},
		{"", domain.Allocation{}},
		{"garbage", domain.Allocation{}},
		{"cpu=x,mem=abcG,gres/gpu=", domain.Allocation{}},
		{"cpu=4,mem=2Q", domain.Allocation{CPUs: 4}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, ParseAlloc(c.in)); diff != "" {
			t.Errorf("ParseAlloc(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestParseAllocOrderIndependent(t *testing.T) {
	want := ParseAlloc("cpu=12,mem=3G,gres/gpu=2")
	for _, in := range []string{
		"mem=3G,cpu=12,gres/gpu=2",
		"gres/gpu=2,cpu=12,mem=3G",
		"gres/gpu=2,mem=3G,cpu=12",
	} {
		if diff := cmp.Diff(want, ParseAlloc(in)); diff != "" {
			t.Errorf("ParseAlloc(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestConfiguredGPUs(t *testing.T) {
	str := func(s string) *string { return &s }
	cases := []struct {
		name string
		in   *string
		want int
	}{
		{"nil", nil, NoGPU},
		{"empty", str(""), NoGPU},
		{"no gpu", str("mps:100,bandwidth:lustre:4G"), NoGPU},
		{"equals", str("gpu=2"), 2},
		{"zero", str("gpu=0"), 0},
		{"legacy colon", str("gpu:4"), 4},
		{"prefixed", str("gres:gpu=2"), 2},
		{"typed", str("gpu:a100:4"), 4},
		{"typed with sockets", str("gpu:a100:4(S:0-1)"), 4},
		{"sockets with comma", str("gpu:a100:2(S:0,1),mps:200"), 2},
		{"several types", str("gpu:a100:2,gpu:v100:1"), 3},
		{"unreadable count", str("gpu:a100"), 0},
		{"bare word", str("gpu"), 0},
	}
	for _, c := range cases {
		if got := ConfiguredGPUs(c.in); got != c.want {
			t.Errorf("%s: ConfiguredGPUs = %d, want %d", c.name, got, c.want)
		}
	}
}
