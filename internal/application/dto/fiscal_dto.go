package dto

// ValidateDocumentRequest body para POST /api/fiscal/validate.
// SubjectKind: "PERSON" (NIF, NIE o pasaporte) o "COMPANY" (CIF).
type ValidateDocumentRequest struct {
	Value       string `json:"value"`
	SubjectKind string `json:"subject_kind"`
}

// ClassifyResponse respuesta de GET /api/fiscal/classify.
type ClassifyResponse struct {
	Value        string `json:"value"`
	DocumentType string `json:"document_type"`
}

// CadastralVerifyRequest body para POST /api/fiscal/cadastral/verify.
type CadastralVerifyRequest struct {
	Reference string `json:"reference"`
}

// CadastralVerifyResponse combina el veredicto de formato (local) con el del registro (remoto).
// Registry es nil si la referencia no tiene formato válido o si el Catastro no respondió.
type CadastralVerifyResponse struct {
	Reference   string             `json:"reference"`
	FormatValid bool               `json:"format_valid"`
	Message     string             `json:"message,omitempty"`
	Registry    *CadastralRegistry `json:"registry,omitempty"`
	RegistryErr string             `json:"registry_error,omitempty"`
}

// CadastralRegistry respuesta del Catastro.
type CadastralRegistry struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}
