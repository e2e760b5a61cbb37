package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/shoplist/internal/shopitem"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, MinTerminalWidth},
		{MinTerminalWidth - 1, MinTerminalWidth},
		{80, 80},
		{MaxContentWidth + 50, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderItemList(t *testing.T) {
	if got := RenderItemList(nil); !strings.Contains(got, "empty") {
		t.Errorf("empty list rendered as %q", got)
	}

	got := RenderItemList([]shopitem.ShopItem{
		{ID: 1, Name: "Milk", Count: 3, Active: true},
		{ID: 12, Name: "Eggs", Count: 2, Active: false},
	})
	for _, want := range []string{"#1", "Milk", "3x", "#12", "Eggs", "2x"} {
		if !strings.Contains(got, want) {
			t.Errorf("list missing %q:\n%s", want, got)
		}
	}
}

func TestItemDetails(t *testing.T) {
	d := ItemDetails(shopitem.New("Milk", 3))
	if d[0].Value != "(new)" || d[1].Value != "Milk" || d[2].Value != "3" {
		t.Errorf("ItemDetails(new) = %+v", d)
	}
	d = ItemDetails(shopitem.ShopItem{ID: 4, Name: "Tea", Count: 1})
	if d[0].Value != "4" {
		t.Errorf("ItemDetails id = %q, want 4", d[0].Value)
	}
}

func TestRenderFailureIncludesErrorAndHints(t *testing.T) {
	got := RenderFailure("Could not save", errors.New("disk full"), []string{"free some space"}, 80)
	for _, want := range []string{"Could not save", "disk full", "free some space"} {
		if !strings.Contains(got, want) {
			t.Errorf("failure box missing %q:\n%s", want, got)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			if got := Confirm(strings.NewReader(tt.input), &out, "Delete?"); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Delete?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintSaved("Item added", shopitem.ShopItem{ID: 2, Name: "Bread", Count: 1})
	p.PrintError("Failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"Item added", "Bread", "Failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("printer output missing %q", want)
		}
	}
}
