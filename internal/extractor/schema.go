package extractor

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	pdfMIMEType  = "application/pdf"
	jsonMIMEType = "application/json"
)

// Field names of a record in the model response.
const (
	fieldDate        = "date"
	fieldDescription = "description"
	fieldAmount      = "amount"
	fieldType        = "type"
	fieldCategory    = "category"
)

// ResponseSchema constrains the model to a JSON array of transaction objects
// whose category is one of labels.
func ResponseSchema(labels []string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				fieldDate: {
					Type:        genai.TypeString,
					Description: "Transaction date in YYYY-MM-DD format",
				},
				fieldDescription: {
					Type:        genai.TypeString,
					Description: "Transaction description or merchant name",
				},
				fieldAmount: {
					Type:        genai.TypeNumber,
					Description: "Transaction amount as a positive number",
				},
				fieldType: {
					Type: genai.TypeString,
					Enum: []string{"DEBIT", "CREDIT"},
				},
				fieldCategory: {
					Type: genai.TypeString,
					Enum: labels,
				},
			},
			Required: []string{fieldDate, fieldDescription, fieldAmount, fieldType, fieldCategory},
		},
	}
}

// BuildPrompt returns the instruction sent alongside the PDF.
func BuildPrompt(labels []string) string {
	return fmt.Sprintf(`Extract every transaction from this bank statement.
For each transaction return:
- date: the transaction date in YYYY-MM-DD format
- description: the merchant or a short description
- amount: the amount as a positive number without currency symbols
- type: DEBIT for money leaving the account, CREDIT for money entering it
- category: exactly one of: %s

Use "Misc" when no other category fits. Return an empty array if the document contains no transactions.`,
		strings.Join(labels, ", "))
}
