package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("short terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeader_ContainsParts(t *testing.T) {
	h := RenderHeader("答题", "得分 40", 80)
	for _, want := range []string{AppName, "答题", "得分 40"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestRenderFooter_ContainsHints(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "确定"}, {Key: "Esc", Description: "返回"}}, 80)
	for _, want := range []string{"Enter", "确定", "Esc", "返回"} {
		if !strings.Contains(f, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader("t", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := strings.Count(frame, "\n") + 1; got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if ContentHeight(header, footer, 30) != 30-6 {
		t.Errorf("content height = %d", ContentHeight(header, footer, 30))
	}
}
