package tui

import (
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// anonymousUsers are login names that do not identify a person.
var anonymousUsers = map[string]bool{
	"":          true,
	"anonymous": true,
	"guest":     true,
	"root":      true,
}

// PlayerHandle returns name, or a generated handle like "brave-otter" when
// name is empty or a shared login.
func PlayerHandle(name string) string {
	name = strings.TrimSpace(name)
	if anonymousUsers[strings.ToLower(name)] {
		return petname.Generate(2, "-")
	}
	return name
}
