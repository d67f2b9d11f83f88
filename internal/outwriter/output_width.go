package outwriter

import (
	"os"

	"github.com/huangsam/divrank/internal/contract"
	"golang.org/x/term"
)

// getMaxInstitutionWidth calculates the maximum width for institution names in
// table output based on terminal width and the fixed columns around them.
func getMaxInstitutionWidth(cfg *contract.Config) int {
	termWidth := cfg.Width // absolute override from flag/env

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + City + State + Score + %Female + %Of Color with borders/padding
	baseWidth := 8 + 20 + 8 + 10 + 10 + 12 + 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
