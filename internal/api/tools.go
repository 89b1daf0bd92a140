package api

// Tool represents a tool the model may invoke
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// FetchWebContentTool is the tool definition for web lookups
var FetchWebContentTool = Tool{
	Name:        "fetch_web_content",
	Description: "Retrieves info from website based on user queries",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "the search query or website to look up information about",
			},
		},
		"required": []string{"query"},
	},
}

// GetDefaultTools returns the default set of tools available to the model
func GetDefaultTools() []Tool {
	return []Tool{
		FetchWebContentTool,
	}
}
