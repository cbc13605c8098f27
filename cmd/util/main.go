package main

import (
	"github.com/onflow/flow-qrinfo/cmd/util/cmd"
)

func main() {
	cmd.Execute()
}
