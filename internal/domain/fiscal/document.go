// Package fiscal valida y clasifica documentos de identificación fiscal españoles
// (NIF, NIE, CIF, pasaporte) y el formato de la referencia catastral.
//
// Todas las funciones son totales: una entrada malformada produce false/UNKNOWN o un
// ValidationResult inválido, nunca un pánico. No hay estado mutable: las tablas de control
// son constantes de pkg/aeat.
package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/fincas-api/internal/domain"
	"github.com/jhoicas/fincas-api/pkg/aeat"
)

// SubjectKind sujeto al que pertenece el documento.
type SubjectKind string

const (
	SubjectPerson  SubjectKind = "PERSON"
	SubjectCompany SubjectKind = "COMPANY"
)

var (
	nifPattern       = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)
	niePattern       = regexp.MustCompile(`^[XYZ][0-9]{7}[A-Z]$`)
	cifPattern       = regexp.MustCompile(`^[ABCDEFGHJNPQRSUVW][0-9]{7}[0-9A-J]$`)
	passportPattern  = regexp.MustCompile(`^[A-Z0-9]{6,9}$`)
	personPassport   = regexp.MustCompile(`^[A-Z0-9]{8}$`)
	cadastralPattern = regexp.MustCompile(`^[A-Z0-9]{20}$`)
)

// Normalize recorta espacios y pasa a mayúsculas solo las letras ASCII. Los caracteres no ASCII
// se conservan tal cual para que los patrones los rechacen (ſ no debe convertirse en S).
func Normalize(input string) string {
	return strings.Map(asciiUpper, strings.TrimSpace(input))
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// CheckNIF valida un NIF: 8 dígitos + letra = NIFAlphabet[número mod 23].
func CheckNIF(input string) domain.ValidationResult {
	v := Normalize(input)
	if v == "" {
		return domain.Invalid(domain.DocumentNIF, domain.CodeRequired, "el NIF es obligatorio")
	}
	if !nifPattern.MatchString(v) {
		return domain.Invalid(domain.DocumentNIF, domain.CodeFormat, "el NIF debe tener 8 dígitos seguidos de una letra")
	}
	return checkPersonalLetter(domain.DocumentNIF, v[:8], v[8])
}

// ValidateNIF atajo booleano de CheckNIF.
func ValidateNIF(input string) bool { return CheckNIF(input).Valid }

// CheckNIE valida un NIE: X/Y/Z se sustituye por 0/1/2 y se aplica el algoritmo del NIF.
func CheckNIE(input string) domain.ValidationResult {
	v := Normalize(input)
	if v == "" {
		return domain.Invalid(domain.DocumentNIE, domain.CodeRequired, "el NIE es obligatorio")
	}
	if !niePattern.MatchString(v) {
		return domain.Invalid(domain.DocumentNIE, domain.CodeFormat, "el NIE debe empezar por X, Y o Z seguido de 7 dígitos y una letra")
	}
	prefix, ok := aeat.NIEPrefixDigit(v[0])
	if !ok {
		return domain.Invalid(domain.DocumentNIE, domain.CodeFormat, "letra inicial de NIE no admitida")
	}
	return checkPersonalLetter(domain.DocumentNIE, string(prefix)+v[1:8], v[8])
}

// ValidateNIE atajo booleano de CheckNIE.
func ValidateNIE(input string) bool { return CheckNIE(input).Valid }

func checkPersonalLetter(t domain.DocumentType, digits string, letter byte) domain.ValidationResult {
	number, err := strconv.Atoi(digits)
	if err != nil {
		return domain.Invalid(t, domain.CodeFormat, "parte numérica inválida")
	}
	expected := aeat.NIFControlLetter(number)
	if letter != expected {
		return domain.Invalid(t, domain.CodeChecksum,
			fmt.Sprintf("letra de control incorrecta: esperada %c, recibida %c", expected, letter))
	}
	return domain.Valid(t)
}

// CheckCIF valida un CIF. El carácter final se acepta si coincide con el dígito de control
// o con su letra en CIFLetters, sin depender de la letra de tipo de entidad.
func CheckCIF(input string) domain.ValidationResult {
	v := Normalize(input)
	if v == "" {
		return domain.Invalid(domain.DocumentCIF, domain.CodeRequired, "el CIF es obligatorio")
	}
	if !cifPattern.MatchString(v) {
		return domain.Invalid(domain.DocumentCIF, domain.CodeFormat, "el CIF debe tener una letra de entidad, 7 dígitos y un carácter de control")
	}
	control, err := aeat.CIFControl(v[1:8])
	if err != nil {
		return domain.Invalid(domain.DocumentCIF, domain.CodeFormat, err.Error())
	}
	last := v[8]
	digit := byte('0' + control)
	letter := aeat.CIFControlLetter(control)
	if last == digit || last == letter {
		return domain.Valid(domain.DocumentCIF)
	}
	return domain.Invalid(domain.DocumentCIF, domain.CodeChecksum,
		fmt.Sprintf("carácter de control incorrecto: esperado %c o %c, recibido %c", digit, letter, last))
}

// ValidateCIF atajo booleano de CheckCIF.
func ValidateCIF(input string) bool { return CheckCIF(input).Valid }

// ValidatePassport heurística de formato (6 a 9 alfanuméricos). No existe algoritmo oficial.
func ValidatePassport(input string) bool {
	return passportPattern.MatchString(Normalize(input))
}

// ValidatePersonPassport variante estricta de 8 caracteres usada en algunas fichas de personas.
func ValidatePersonPassport(input string) bool {
	return personPassport.MatchString(Normalize(input))
}

// CheckCadastralReference valida el formato de una referencia catastral (20 alfanuméricos).
// La existencia en el Catastro es una comprobación aparte y asíncrona.
func CheckCadastralReference(input string) domain.ValidationResult {
	v := Normalize(input)
	if v == "" {
		return domain.Invalid(domain.DocumentCadastral, domain.CodeRequired, "la referencia catastral es obligatoria")
	}
	if !cadastralPattern.MatchString(v) {
		return domain.Invalid(domain.DocumentCadastral, domain.CodeFormat,
			fmt.Sprintf("la referencia catastral debe tener 20 caracteres alfanuméricos, se recibieron %d", len([]rune(v))))
	}
	return domain.Valid(domain.DocumentCadastral)
}

// ValidateCadastralReferenceFormat atajo booleano de CheckCadastralReference.
func ValidateCadastralReferenceFormat(input string) bool {
	return CheckCadastralReference(input).Valid
}

// Classify prueba NIF, NIE, CIF y pasaporte en ese orden; gana la primera coincidencia.
// El pasaporte va al final porque su patrón es el más laxo.
func Classify(input string) domain.DocumentType {
	switch {
	case ValidateNIF(input):
		return domain.DocumentNIF
	case ValidateNIE(input):
		return domain.DocumentNIE
	case ValidateCIF(input):
		return domain.DocumentCIF
	case ValidatePassport(input):
		return domain.DocumentPassport
	default:
		return domain.DocumentUnknown
	}
}

// ValidateIdentification valida el documento según el sujeto.
// COMPANY exige CIF; PERSON admite NIF, NIE o pasaporte.
func ValidateIdentification(input string, kind SubjectKind) domain.ValidationResult {
	v := Normalize(input)
	if v == "" {
		return domain.Invalid(domain.DocumentUnknown, domain.CodeRequired, "el documento de identificación es obligatorio")
	}

	switch kind {
	case SubjectCompany:
		return CheckCIF(v)
	case SubjectPerson:
		// Un NIF/NIE con letra errónea sigue encajando como pasaporte (OR laxo);
		// quien necesite distinguirlo debe usar CheckNIF/CheckNIE directamente.
		if r := CheckNIF(v); r.Valid {
			return r
		}
		if r := CheckNIE(v); r.Valid {
			return r
		}
		if ValidatePassport(v) {
			return domain.Valid(domain.DocumentPassport)
		}
		return domain.Invalid(domain.DocumentUnknown, domain.CodeFormat, "formato no válido: se esperaba NIF, NIE o pasaporte")
	default:
		return domain.Invalid(domain.DocumentUnknown, domain.CodeFormat, fmt.Sprintf("tipo de sujeto desconocido: %q", kind))
	}
}
