// Command word-skill gives agents JSON access to .docx documents.
package main

import (
	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/cmd/word"
)

func main() {
	cmd.Execute(word.NewRootCommand())
}
