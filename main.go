package main

import (
	"trpg_json/internal/app"
	"trpg_json/internal/cli"
)

func main() {
	app.SetupEnvironment()
	cli.Execute()
}
