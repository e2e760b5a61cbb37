package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shoplist/internal/shopitem"
)

// RenderItemList renders one line per item: id, count and name. Inactive
// items are struck through.
func RenderItemList(items []shopitem.ShopItem) string {
	if len(items) == 0 {
		return HintStyle.Render("The shopping list is empty.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Shopping list"))
	b.WriteString("\n")
	for _, it := range items {
		name := ItemNameStyle.Render(it.Name)
		if !it.Active {
			name = InactiveStyle.Render(it.Name)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			ItemIDStyle.Render("#"+strconv.Itoa(it.ID)),
			"  ",
			ItemCountStyle.Render(strconv.Itoa(it.Count)+"x"),
			" ",
			name,
		))
		b.WriteString("\n")
	}
	return b.String()
}

// ItemDetails returns the result-box details for an item.
func ItemDetails(it shopitem.ShopItem) []Detail {
	id := "(new)"
	if it.HasID() {
		id = strconv.Itoa(it.ID)
	}
	return []Detail{
		{Key: "ID", Value: id},
		{Key: "Name", Value: it.Name},
		{Key: "Count", Value: strconv.Itoa(it.Count)},
	}
}
