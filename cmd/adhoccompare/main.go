// Command adhoccompare writes a side-by-side HTML comparison of two Adhoc scripts.
package main

import (
	"log/slog"

	"adhoctool/internal/adhoctool/cmd"
	"adhoctool/internal/adhoctool/log"
)

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Comparison terminated due to unhandled panic")
	})

	cmd.ExecuteCompare()
}
