package domain

// DocumentType tipo de documento derivado únicamente de la forma del texto.
type DocumentType string

const (
	DocumentNIF       DocumentType = "NIF"
	DocumentNIE       DocumentType = "NIE"
	DocumentCIF       DocumentType = "CIF"
	DocumentPassport  DocumentType = "PASSPORT"
	DocumentCadastral DocumentType = "CADASTRAL_REFERENCE"
	DocumentUnknown   DocumentType = "UNKNOWN"
)

// Códigos de resultado. Permiten distinguir "formato incorrecto" de "letra de control incorrecta".
const (
	CodeOK          = ""
	CodeRequired    = "REQUIRED"
	CodeFormat      = "FORMAT"
	CodeChecksum    = "CHECKSUM"
	CodeRange       = "RANGE"
	CodeConsistency = "CONSISTENCY"
)

// ValidationResult veredicto de una validación. Los fallos se devuelven como datos, nunca como pánico.
type ValidationResult struct {
	Valid        bool         `json:"valid"`
	DocumentType DocumentType `json:"document_type,omitempty"`
	Code         string       `json:"code,omitempty"`
	Message      string       `json:"message,omitempty"`
}

// Valid resultado válido con el tipo de documento indicado (puede ser vacío).
func Valid(t DocumentType) ValidationResult {
	return ValidationResult{Valid: true, DocumentType: t}
}

// Invalid resultado inválido con código y mensaje.
func Invalid(t DocumentType, code, message string) ValidationResult {
	return ValidationResult{DocumentType: t, Code: code, Message: message}
}
