package main

import (
	"os"

	"github.com/schmitthub/nvmd/internal/nvmd"
)

func main() {
	os.Exit(nvmd.Main())
}
