package judge

import "github.com/zinc-sig/specter/internal/output"

// Score awards the full score for a pass and nothing otherwise.
func Score(status output.Status, maxScore int) int {
	if status != output.StatusPass || maxScore < 0 {
		return 0
	}
	return maxScore
}
