//go:build ignore

// This program generates sample files for trying the skill tools by hand:
//
//	go run testdata/generate_fixtures.go
//	excel-skill read testdata/sample.xlsx
//	word-skill info testdata/sample.docx
package main

import (
	"fmt"
	"os"

	"github.com/klytics/officeskills/internal/formats/docx"
	"github.com/klytics/officeskills/internal/formats/xlsx"
)

func main() {
	if err := generateDocx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.docx: %v\n", err)
		os.Exit(1)
	}

	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateDocx() error {
	data, err := docx.WriteDocument([]docx.Block{
		{Type: docx.BlockParagraph, Style: "Title", Text: "Order Confirmation"},
		{Type: docx.BlockParagraph, Text: "Dear <<CustomerName>>,"},
		{Type: docx.BlockParagraph, Text: "Thank you for your order {{OrderID}} placed on {{OrderDate}}. The items below ship from our <<Warehouse>> warehouse."},
		{Type: docx.BlockParagraph},
		{Type: docx.BlockParagraph, Style: "Heading1", Text: "Items"},
		{Type: docx.BlockTable, Rows: [][]string{{"Item", "Quantity", "Unit Price"}}},
		{Type: docx.BlockParagraph, Style: "Heading1", Text: "Contact"},
		{Type: docx.BlockTable, Rows: [][]string{
			{"Role", "Name", "Email"},
			{"Account manager", "<<ManagerName>>", "<<ManagerEmail>>"},
		}},
		{Type: docx.BlockParagraph, Runs: []docx.RunSpec{
			{Text: "Regards, "},
			{Text: "<<Sender", Bold: true},
			{Text: "Name>>", Italic: true},
		}},
	})
	if err != nil {
		return err
	}

	return os.WriteFile("testdata/sample.docx", data, 0644)
}

func generateXlsx() error {
	return xlsx.WriteFile("testdata/sample.xlsx",
		xlsx.SheetData{
			Name: "Revenue",
			Rows: [][]any{
				{"Quarter", "Product", "Revenue", "Growth", "On Target"},
				{"Q1 2024", "Enterprise", 1250000, 0.12, true},
				{"Q1 2024", "SMB", 450000, 0.08, false},
				{"Q1 2024", "Consumer", 320000, 0.15, true},
				{"Q2 2024", "Enterprise", 1380000, 0.10, true},
				{"Q2 2024", "SMB", 520000, 0.16, true},
				{"Q2 2024", "Consumer", 350000, 0.09, false},
				{"Q3 2024", "Enterprise", 1450000, 0.05, false},
				{"Q3 2024", "SMB", 580000, 0.12, true},
				{"Q3 2024", "Consumer", 410000, 0.17, true},
				{"Q4 2024", "Enterprise", 1620000, 0.12, true},
				{"Q4 2024", "SMB", 640000, 0.10, true},
				{"Q4 2024", "Consumer", 480000, 0.17, true},
			},
		},
		xlsx.SheetData{
			Name: "Summary",
			Rows: [][]any{
				{"Metric", "Value"},
				{"Total Revenue", 8450000},
				{"YoY Growth", 0.123},
				{"Top Product", "Enterprise"},
				{"Fastest Growth", "Consumer"},
			},
		},
	)
}
