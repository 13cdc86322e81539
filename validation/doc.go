// Package validation provides input validation for render requests.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// the default for HTTP request payloads.
//
// # Struct Tag Validation
//
//	type RenderRequest struct {
//	    Source string `json:"source" validate:"required"`
//	    Type   string `json:"type" validate:"omitempty,oneof=class usecase activity state deployment package sequence"`
//	}
//	err := validation.ValidateStruct(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("source", src).OneOf("direction", dir, []string{"TB", "LR", "RL"})
//	err := v.Validate()
package validation
