package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
)

func parseRecipeID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", s)
	}
	return id, nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// stars renders a rating as filled and empty stars, e.g. "★★★☆☆".
func stars(v int) string {
	return strings.Repeat("★", v) + strings.Repeat("☆", common.MaxRating-v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
