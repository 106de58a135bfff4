package main

import "github.com/BayAreaMetro/tm2kit/internal/cli"

func main() {
	cli.Execute()
}
