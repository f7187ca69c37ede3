package catalogue

import (
	"fmt"
	"strings"
	"sync"
)

// maxSkusPerService caps the SKU list per service in the prompt text so
// the system prompt stays within a predictable size.
const maxSkusPerService = 8

var (
	promptOnce sync.Once
	promptText string
)

// PromptText renders the catalogue as compact plain text for AI system
// prompts, one line per service:
//
//	ServiceName (Family): sku1, sku2, ... (+N more)
//
// Services are sorted so the text is deterministic. Cached after the
// first call.
func PromptText() string {
	promptOnce.Do(func() {
		lookup := Get()
		var b strings.Builder
		for _, name := range Services() {
			info := lookup.Services[name]
			skus := info.Skus
			overflow := ""
			if len(skus) > maxSkusPerService {
				overflow = fmt.Sprintf(" (+%d more)", len(skus)-maxSkusPerService)
				skus = skus[:maxSkusPerService]
			}
			fmt.Fprintf(&b, "%s (%s): %s%s\n", name, info.Family, strings.Join(skus, ", "), overflow)
		}
		promptText = strings.TrimRight(b.String(), "\n")
	})
	return promptText
}
