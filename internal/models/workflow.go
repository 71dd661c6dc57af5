package models

import (
	"time"
)

// Node types understood by the workflow builder canvas.
const (
	NodeTypeUserQuery     = "user_query"
	NodeTypeKnowledgeBase = "knowledge_base"
	NodeTypeLLMEngine     = "llm_engine"
	NodeTypeOutput        = "output"
)

// WorkflowNode represents a single node in the builder canvas
type WorkflowNode struct {
	ID            string                 `json:"id"`
	NodeID        string                 `json:"node_id"` // unique within the workflow, assigned by the canvas
	NodeType      string                 `json:"node_type"`
	Configuration map[string]interface{} `json:"configuration,omitempty"`
	Position      map[string]float64     `json:"position,omitempty"`
}

// WorkflowConfiguration holds free-form workflow settings such as
// node connections and execution flags
type WorkflowConfiguration map[string]interface{}

// WebSearchEnabled reports whether the enable_web_search flag is set
func (c WorkflowConfiguration) WebSearchEnabled() bool {
	if c == nil {
		return false
	}
	enabled, ok := c["enable_web_search"].(bool)
	return ok && enabled
}

// Workflow represents a user-defined workflow definition
type Workflow struct {
	ID            string                `json:"workflow_id"`
	UserID        string                `json:"user_id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Configuration WorkflowConfiguration `json:"configuration,omitempty"`
	Nodes         []WorkflowNode        `json:"nodes,omitempty"`
	IsActive      bool                  `json:"is_active"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// Validate checks if the workflow record is storable
func (w *Workflow) Validate() error {
	if w.ID == "" {
		return &ValidationError{Field: "id", Message: "workflow ID is required"}
	}
	if w.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "user ID is required"}
	}
	if w.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// CreateWorkflowRequest represents a request to create a workflow
type CreateWorkflowRequest struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Configuration WorkflowConfiguration `json:"configuration,omitempty"`
	Nodes         []WorkflowNode        `json:"nodes,omitempty"`
}

// Validate validates the create request
func (r *CreateWorkflowRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(r.Name) > 255 {
		return &ValidationError{Field: "name", Message: "name cannot exceed 255 characters"}
	}
	for _, node := range r.Nodes {
		switch node.NodeType {
		case NodeTypeUserQuery, NodeTypeKnowledgeBase, NodeTypeLLMEngine, NodeTypeOutput:
		default:
			return &ValidationError{Field: "nodes", Message: "unknown node type: " + node.NodeType}
		}
	}
	return nil
}

// UpdateWorkflowRequest represents a partial workflow update
type UpdateWorkflowRequest struct {
	Name          *string               `json:"name,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Configuration WorkflowConfiguration `json:"configuration,omitempty"`
	Nodes         []WorkflowNode        `json:"nodes,omitempty"`
	IsActive      *bool                 `json:"is_active,omitempty"`
}

// ExecuteRequest represents a request to execute a workflow with a query
type ExecuteRequest struct {
	Query            string   `json:"query"`
	ContextDocuments []string `json:"context_documents,omitempty"`
	Temperature      *float32 `json:"temperature,omitempty"`
}

// Validate validates the execution request
func (r *ExecuteRequest) Validate() error {
	if r.Query == "" {
		return &ValidationError{Field: "query", Message: "query is required"}
	}
	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > 2) {
		return &ValidationError{Field: "temperature", Message: "temperature must be between 0 and 2"}
	}
	return nil
}
