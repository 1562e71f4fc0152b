package tui

import (
	"fmt"
	"strings"
)

const uiDivider = "──────────────────────────────────────────────────────"

func viewTitle(title string) string {
	return fmt.Sprintf("%s\n%s\n", titleStyle.Render(title), uiDivider)
}

// shortAddress compresses a 0x-prefixed address to its familiar
// 0x1234...abcd display form.
func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}

func cursorFor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func helpLine(parts ...string) string {
	return helpStyle.Render(strings.Join(parts, "  "))
}
