// Command excel-skill gives agents JSON access to .xlsx workbooks.
package main

import (
	"github.com/klytics/officeskills/cmd"
	"github.com/klytics/officeskills/cmd/excel"
)

func main() {
	cmd.Execute(excel.NewRootCommand())
}
