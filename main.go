package main

import (
	_ "embed"

	"github.com/modernnotes/modern-notes-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
