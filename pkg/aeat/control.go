// Package aeat contiene las tablas de control y los algoritmos oficiales de dígito/letra
// de control de los documentos fiscales españoles (NIF, NIE, CIF).
package aeat

import "fmt"

// Tablas de control (Orden INT/2058/2008 para NIF/NIE; Decreto 2423/1975 para CIF).
const (
	// NIFAlphabet letras de control NIF/NIE indexadas por número mod 23.
	NIFAlphabet = "TRWAGMYFPDXBNJZSQVHLCKE"
	// CIFLetters letras de control CIF indexadas por el dígito de control.
	CIFLetters = "JABCDEFGHI"
	// CIFEntityLetters letras iniciales admitidas para el tipo de entidad.
	CIFEntityLetters = "ABCDEFGHJNPQRSUVW"
	// NIEPrefixes letras iniciales de NIE; su posición es el dígito que las sustituye.
	NIEPrefixes = "XYZ"
)

// NIFControlLetter devuelve la letra de control para el número (8 dígitos) de un NIF.
func NIFControlLetter(number int) byte {
	if number < 0 {
		number = -number
	}
	return NIFAlphabet[number%23]
}

// NIEPrefixDigit traduce X/Y/Z a 0/1/2. ok es false para cualquier otra letra.
func NIEPrefixDigit(prefix byte) (digit byte, ok bool) {
	for i := 0; i < len(NIEPrefixes); i++ {
		if NIEPrefixes[i] == prefix {
			return byte('0' + i), true
		}
	}
	return 0, false
}

// CIFControl calcula el dígito de control (0-9) de los 7 dígitos centrales de un CIF.
// Posiciones pares (base 0) se duplican y, si superan 9, se suman sus cifras;
// control = (10 - suma mod 10) mod 10.
func CIFControl(sevenDigits string) (int, error) {
	if len(sevenDigits) != 7 {
		return 0, fmt.Errorf("aeat: el CIF requiere 7 dígitos centrales, se recibieron %d caracteres", len(sevenDigits))
	}
	var sum int
	for i := 0; i < len(sevenDigits); i++ {
		c := sevenDigits[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("aeat: carácter no numérico %q en la posición %d", c, i)
		}
		d := int(c - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d = d/10 + d%10
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// CIFControlLetter representación alfabética del dígito de control del CIF.
func CIFControlLetter(control int) byte {
	return CIFLetters[((control%10)+10)%10]
}
