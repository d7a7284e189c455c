package main

import (
	"lazycf/cmd/lazycf/commands"
	"lazycf/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	if err := commands.ExecuteContext(ctx); err != nil {
		cancel()
		serviceutil.Fatal("lazycf", err)
	}
}
