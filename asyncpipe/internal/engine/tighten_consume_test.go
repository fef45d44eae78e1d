package engine

import (
	"testing"

	"github.com/lucidpipe/lucidc/ir"
)

func TestTightenConsumeRegions_NarrowsOnlyTheReferencingHalfOfABlock(t *testing.T) {
	body := &ir.Block{
		First: &ir.Provide{Name: "f"},
		Rest:  &ir.Provide{Name: "unrelated"},
	}
	pc := &ir.ProducerConsumer{Name: "f", IsProducer: false, Body: body}

	got := TightenConsumeRegions(pc)

	blk, ok := got.(*ir.Block)
	if !ok {
		t.Fatalf("expected the block to survive at the top, got:\n%s", ir.Sprint(got))
	}
	if _, ok := blk.First.(*ir.ProducerConsumer); !ok {
		t.Fatalf("expected the referencing half wrapped in a narrowed marker, got:\n%s", ir.Sprint(blk.First))
	}
	if _, ok := blk.Rest.(*ir.ProducerConsumer); ok {
		t.Fatalf("unrelated half should not be wrapped, got:\n%s", ir.Sprint(blk.Rest))
	}
}

func TestTightenConsumeRegions_ProducerMarkersAreLeftAlone(t *testing.T) {
	body := &ir.Block{
		First: &ir.Provide{Name: "f"},
		Rest:  &ir.Provide{Name: "unrelated"},
	}
	pc := &ir.ProducerConsumer{Name: "f", IsProducer: true, Body: body}

	got := TightenConsumeRegions(pc)

	gotPC, ok := got.(*ir.ProducerConsumer)
	if !ok || !gotPC.IsProducer {
		t.Fatalf("producer marker should stay put unnarrowed, got:\n%s", ir.Sprint(got))
	}
	if _, ok := gotPC.Body.(*ir.Block); !ok {
		t.Fatalf("producer marker body should stay a plain block, got:\n%s", ir.Sprint(gotPC.Body))
	}
}

func TestTightenConsumeRegions_BothHalvesReferencingNarrowsEachHalf(t *testing.T) {
	body := &ir.Block{
		First: &ir.Provide{Name: "f"},
		Rest:  &ir.Provide{Name: "f"},
	}
	pc := &ir.ProducerConsumer{Name: "f", IsProducer: false, Body: body}

	got := TightenConsumeRegions(pc)

	gotBlk, ok := got.(*ir.Block)
	if !ok {
		t.Fatalf("expected narrowing to recurse into both halves, got:\n%s", ir.Sprint(got))
	}
	if _, ok := gotBlk.First.(*ir.ProducerConsumer); !ok {
		t.Fatalf("expected first half wrapped, got:\n%s", ir.Sprint(gotBlk.First))
	}
	if _, ok := gotBlk.Rest.(*ir.ProducerConsumer); !ok {
		t.Fatalf("expected rest half wrapped, got:\n%s", ir.Sprint(gotBlk.Rest))
	}
}
