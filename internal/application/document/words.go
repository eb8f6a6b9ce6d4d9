package document

import (
	"math"

	ntw "moul.io/number-to-words"
)

// AmountInWords renders a monetary amount as the legal caption line, e.g.
// 1234.50 with MAD wording -> "mille deux cent trente-quatre dirhams et
// cinquante centimes". The sub-unit clause is appended only when the
// fractional part is non-zero.
func AmountInWords(amount float64, language, unitWord, subunitWord string) string {
	units := int(math.Floor(amount))
	subunits := int(math.Round((amount - float64(units)) * 100))
	if subunits >= 100 {
		// 0.999… rounds up into the next unit
		units++
		subunits -= 100
	}

	connector := " et "
	if language == "en" {
		connector = " and "
	}

	result := integerToWords(units, language) + " " + unitWord
	if subunits > 0 {
		result += connector + integerToWords(subunits, language) + " " + subunitWord
	}
	return result
}

func integerToWords(n int, language string) string {
	switch language {
	case "en":
		return ntw.IntegerToEnUs(n)
	default:
		return ntw.IntegerToFrFr(n)
	}
}
