package parser

import (
	"regexp"
	"strings"
)

// Search results carry no category column, so the part type is inferred
// from the trailing tokens of the product name. The rules are ordered
// and the first match wins; accuracy is best-effort.
type categoryRule struct {
	match    *regexp.Regexp
	category string
}

var categoryRules = []categoryRule{
	{regexp.MustCompile(`Processor$`), "CPU"},
	{regexp.MustCompile(`CPU Cooler$`), "CPU Cooler"},
	{regexp.MustCompile(`Fan Controller$`), "Fan Controller"},
	{regexp.MustCompile(`Case Fan$`), "Case Fan"},
	{regexp.MustCompile(`Thermal (?:Paste|Compound)$`), "Thermal Compound"},
	{regexp.MustCompile(`Motherboard$`), "Motherboard"},
	{regexp.MustCompile(`Memory$`), "Memory"},
	{regexp.MustCompile(`(?:Solid State Drive|SSD)$`), "Storage"},
	{regexp.MustCompile(`(?:Internal |External )?Hard Drive$`), "Storage"},
	{regexp.MustCompile(`Video Card$`), "Video Card"},
	{regexp.MustCompile(`Power Supply$`), "Power Supply"},
	{regexp.MustCompile(`Windows`), "Operating System"},
	{regexp.MustCompile(`Operating System$`), "Operating System"},
	{regexp.MustCompile(`Monitor$`), "Monitor"},
	{regexp.MustCompile(`Keyboard$`), "Keyboard"},
	{regexp.MustCompile(`Mouse$`), "Mouse"},
	{regexp.MustCompile(`(?:Headphones|Headset)$`), "Headphones"},
	{regexp.MustCompile(`Speakers$`), "Speakers"},
	{regexp.MustCompile(`Webcam$`), "Webcam"},
	{regexp.MustCompile(`Sound Card$`), "Sound Card"},
	{regexp.MustCompile(`Wired Network Adapter$`), "Wired Network Adapter"},
	{regexp.MustCompile(`Wireless Network Adapter$`), "Wireless Network Adapter"},
	{regexp.MustCompile(`Optical Drive$`), "Optical Drive"},
	{regexp.MustCompile(`UPS System$`), "UPS System"},
	{regexp.MustCompile(`Case$`), "Case"},
}

var trailingParenRE = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// inferCategory guesses a part type from a product name. When no rule
// matches, the token immediately preceding the trailing parenthesis
// group (the last remaining token) is used verbatim.
func inferCategory(name string) string {
	trimmed := strings.TrimSpace(trailingParenRE.ReplaceAllString(name, ""))
	for _, rule := range categoryRules {
		if rule.match.MatchString(trimmed) {
			return rule.category
		}
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
