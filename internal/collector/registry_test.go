package collector

import (
	"context"
	"testing"

	"github.com/quantfold/arbscan/internal/domain"
)

type fakeCollector struct {
	name    string
	results []RecordResult
	closed  bool
}

func (f *fakeCollector) Name() string { return f.name }

func (f *fakeCollector) Fetch(context.Context) ([]RecordResult, error) {
	return f.results, nil
}

func (f *fakeCollector) Close() { f.closed = true }

func TestRegistrySelect(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeCollector{name: "polymarket"})
	reg.Register(&fakeCollector{name: "opinion"})

	got, err := reg.Select([]string{"opinion", "polymarket"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0].Name() != "opinion" || got[1].Name() != "polymarket" {
		t.Errorf("Select returned wrong collectors: %v, %v", got[0].Name(), got[1].Name())
	}

	if _, err := reg.Select([]string{"kalshi"}); err == nil {
		t.Error("Select accepted an unknown venue name")
	}

	if names := reg.List(); len(names) != 2 || names[0] != "opinion" {
		t.Errorf("List() = %v, want sorted [opinion polymarket]", names)
	}
}

func TestRegistryClose(t *testing.T) {
	fc := &fakeCollector{name: "opinion"}
	reg := NewRegistry()
	reg.Register(fc)
	reg.Close()
	if !fc.closed {
		t.Error("Close did not reach the collector")
	}
}

func TestSplit(t *testing.T) {
	results := []RecordResult{
		Ok(domain.PriceRecord{Platform: "a", EventName: "x"}),
		Skip("missing title"),
		Ok(domain.PriceRecord{Platform: "a", EventName: "y"}),
		Skip("price out of range"),
	}
	records, skipped := Split(results)
	if len(records) != 2 || skipped != 2 {
		t.Errorf("Split = %d records, %d skipped; want 2, 2", len(records), skipped)
	}
}
