package extract

import (
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestSystemPromptNamesTheKind(t *testing.T) {
	invoice := systemPrompt(KindInvoice)
	if !strings.Contains(invoice, "'INVOICE'") {
		t.Errorf("invoice prompt missing kind label: %q", invoice)
	}

	po := systemPrompt(KindPurchaseOrder)
	if !strings.Contains(po, "'PURCHASE ORDER'") {
		t.Errorf("purchase order prompt missing kind label: %q", po)
	}
}

func TestUserPromptWrapsText(t *testing.T) {
	prompt := userPrompt("INVOICE #42\nTotal: $10.00")
	if !strings.Contains(prompt, "INVOICE #42\nTotal: $10.00") {
		t.Errorf("document text not embedded in prompt: %q", prompt)
	}
	if !strings.HasPrefix(prompt, "Extract all data") {
		t.Errorf("prompt has unexpected preamble: %q", prompt)
	}
}

func TestResponseSchemaShape(t *testing.T) {
	schema := responseSchema(KindInvoice)

	if schema.Type != genai.TypeObject {
		t.Fatalf("schema type = %v, want object", schema.Type)
	}

	for _, field := range []string{"id", "vendor", "total", "items"} {
		if _, ok := schema.Properties[field]; !ok {
			t.Errorf("schema missing property %q", field)
		}
	}
	if len(schema.Required) != 4 {
		t.Errorf("schema requires %d fields, want all 4", len(schema.Required))
	}

	items := schema.Properties["items"]
	if items.Type != genai.TypeArray {
		t.Fatalf("items type = %v, want array", items.Type)
	}

	line := items.Items
	for _, field := range []string{"description", "quantity", "unit_price", "line_total"} {
		if _, ok := line.Properties[field]; !ok {
			t.Errorf("line item schema missing property %q", field)
		}
	}

	// unit_price is derivable from quantity and line_total, so the model is
	// not forced to return it.
	required := strings.Join(line.Required, ",")
	if strings.Contains(required, "unit_price") {
		t.Errorf("unit_price should not be required, got %v", line.Required)
	}
	if len(line.Required) != 3 {
		t.Errorf("line item requires %d fields, want 3", len(line.Required))
	}
}

func TestGenerateConfigConstrainsOutput(t *testing.T) {
	config := generateConfig(KindPurchaseOrder)

	if config.ResponseMIMEType != "application/json" {
		t.Errorf("response MIME type = %q", config.ResponseMIMEType)
	}
	if config.ResponseSchema == nil {
		t.Error("response schema not set")
	}
	if config.SystemInstruction == nil || len(config.SystemInstruction.Parts) == 0 {
		t.Fatal("system instruction not set")
	}
	if !strings.Contains(config.SystemInstruction.Parts[0].Text, "PURCHASE ORDER") {
		t.Errorf("system instruction missing kind: %q", config.SystemInstruction.Parts[0].Text)
	}
}
