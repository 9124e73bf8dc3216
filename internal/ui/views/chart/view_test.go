package chart_test

import (
	"strings"
	"testing"

	sessiondto "studyclock/internal/modules/session/dto"
	"studyclock/internal/ui/views/chart"
)

func TestBarsPlaceholderWhenEmpty(t *testing.T) {
	t.Parallel()
	bars := chart.Bars(nil)
	if len(bars) != 1 || bars[0].Label != chart.NoDataLabel || bars[0].Value != 0 {
		t.Fatalf("expected a single No Data bar, got %+v", bars)
	}
	if got := chart.SuggestedMax(bars); got != 30 {
		t.Fatalf("expected scale 30 for empty chart, got %d", got)
	}
}

func TestSuggestedMaxFollowsLargestValue(t *testing.T) {
	t.Parallel()
	bars := chart.Bars([]sessiondto.DateTotalOutput{
		{Date: "2026-03-01", Minutes: 15},
		{Date: "2026-03-02", Minutes: 75},
	})
	if len(bars) != 2 || bars[0].Label != "2026-03-01" {
		t.Fatalf("expected one bar per date in series order, got %+v", bars)
	}
	if got := chart.SuggestedMax(bars); got != 75 {
		t.Fatalf("expected scale 75, got %d", got)
	}
	small := chart.Bars([]sessiondto.DateTotalOutput{{Date: "2026-03-01", Minutes: 5}})
	if got := chart.SuggestedMax(small); got != 30 {
		t.Fatalf("expected floor of 30, got %d", got)
	}
}

func TestViewShowsMostRecentDatesWhenShort(t *testing.T) {
	t.Parallel()
	m := chart.New()
	m.SetSize(60, 3)
	m.SetSeries([]sessiondto.DateTotalOutput{
		{Date: "2026-03-01", Minutes: 10},
		{Date: "2026-03-02", Minutes: 20},
		{Date: "2026-03-03", Minutes: 30},
	})
	out := m.View()
	if strings.Contains(out, "2026-03-01") {
		t.Fatalf("oldest date should be cut:\n%s", out)
	}
	if !strings.Contains(out, "2026-03-02") || !strings.Contains(out, "2026-03-03") {
		t.Fatalf("recent dates missing:\n%s", out)
	}
}

func TestEmptyViewRendersNoData(t *testing.T) {
	t.Parallel()
	m := chart.New()
	m.SetSize(40, 5)
	if out := m.View(); !strings.Contains(out, chart.NoDataLabel) {
		t.Fatalf("expected placeholder label:\n%s", out)
	}
}
