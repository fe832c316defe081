package helpers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zinc-sig/specter/internal/config"
)

// PrintConfigInfo prints the resolved test configuration as JSON
func PrintConfigInfo(w io.Writer, cfg *config.TestConfig) {
	jsonBytes, err := json.MarshalIndent(struct {
		*config.TestConfig
		Timeout string `json:"timeout"`
	}{cfg, cfg.Timeout.String()}, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "  %+v\n", cfg)
		return
	}
	fmt.Fprintln(w, string(jsonBytes))
}
