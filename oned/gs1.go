package oned

import (
	"fmt"

	gridscan "github.com/gridscan/gridscan"
)

// aiLength describes one GS1 application identifier: whether its data field
// is variable length, and the (maximum) field length.
type aiLength struct {
	variable bool
	length   int
}

var (
	twoDigitAIs       map[string]aiLength
	threeDigitAIs     map[string]aiLength
	threeDigitPlusAIs map[string]aiLength
	fourDigitAIs      map[string]aiLength
)

func init() {
	twoDigitAIs = map[string]aiLength{
		"00": {false, 18}, "01": {false, 14}, "02": {false, 14},
		"10": {true, 20}, "11": {false, 6}, "12": {false, 6},
		"13": {false, 6}, "15": {false, 6}, "16": {false, 6},
		"17": {false, 6}, "20": {false, 2}, "21": {true, 20},
		"22": {true, 29}, "30": {true, 8}, "37": {true, 8},
	}
	for i := 90; i <= 99; i++ {
		twoDigitAIs[fmt.Sprintf("%d", i)] = aiLength{true, 30}
	}

	threeDigitAIs = map[string]aiLength{
		"235": {true, 28}, "240": {true, 30}, "241": {true, 30},
		"242": {true, 6}, "243": {true, 20}, "250": {true, 30},
		"251": {true, 30}, "253": {true, 30}, "254": {true, 20},
		"255": {true, 25}, "400": {true, 30}, "401": {true, 30},
		"402": {false, 17}, "403": {true, 30},
		"410": {false, 13}, "411": {false, 13}, "412": {false, 13},
		"413": {false, 13}, "414": {false, 13}, "415": {false, 13},
		"416": {false, 13}, "417": {false, 13},
		"420": {true, 20}, "421": {true, 15}, "422": {false, 3},
		"423": {true, 15}, "424": {false, 3}, "425": {true, 15},
		"426": {false, 3}, "427": {true, 3},
		"710": {true, 20}, "711": {true, 20}, "712": {true, 20},
		"713": {true, 20}, "714": {true, 20}, "715": {true, 20},
	}

	threeDigitPlusAIs = map[string]aiLength{}
	for _, span := range [][2]int{{310, 316}, {320, 337}, {340, 357}, {360, 369}} {
		for i := span[0]; i <= span[1]; i++ {
			threeDigitPlusAIs[fmt.Sprintf("%d", i)] = aiLength{false, 6}
		}
	}
	threeDigitPlusAIs["390"] = aiLength{true, 15}
	threeDigitPlusAIs["391"] = aiLength{true, 18}
	threeDigitPlusAIs["392"] = aiLength{true, 15}
	threeDigitPlusAIs["393"] = aiLength{true, 18}
	threeDigitPlusAIs["394"] = aiLength{false, 4}
	threeDigitPlusAIs["395"] = aiLength{false, 6}
	threeDigitPlusAIs["703"] = aiLength{true, 30}
	threeDigitPlusAIs["723"] = aiLength{true, 30}

	fourDigitAIs = map[string]aiLength{
		"4300": {true, 35}, "4301": {true, 35}, "4302": {true, 70},
		"4303": {true, 70}, "4304": {true, 70}, "4305": {true, 70},
		"4306": {true, 70}, "4307": {false, 2}, "4308": {true, 30},
		"4309": {false, 20}, "4310": {true, 35}, "4311": {true, 35},
		"4312": {true, 70}, "4313": {true, 70}, "4314": {true, 70},
		"4315": {true, 70}, "4316": {true, 70}, "4317": {false, 2},
		"4318": {true, 20}, "4319": {true, 30}, "4320": {true, 35},
		"4321": {false, 1}, "4322": {false, 1}, "4323": {false, 1},
		"4324": {false, 10}, "4325": {false, 10}, "4326": {false, 6},
		"7001": {false, 13}, "7002": {true, 30}, "7003": {false, 10},
		"7004": {true, 4}, "7005": {true, 12}, "7006": {false, 6},
		"7007": {true, 12}, "7008": {true, 3}, "7009": {true, 10},
		"7010": {true, 2}, "7011": {true, 10},
		"7020": {true, 20}, "7021": {true, 20}, "7022": {true, 20},
		"7023": {true, 30}, "7040": {false, 4}, "7240": {true, 20},
		"8001": {false, 14}, "8002": {true, 20}, "8003": {true, 30},
		"8004": {true, 30}, "8005": {false, 6}, "8006": {false, 18},
		"8007": {true, 34}, "8008": {true, 12}, "8009": {true, 50},
		"8010": {true, 30}, "8011": {true, 12}, "8012": {true, 20},
		"8013": {true, 25}, "8017": {false, 18}, "8018": {false, 18},
		"8019": {true, 10}, "8020": {true, 25}, "8026": {false, 18},
		"8100": {false, 6}, "8101": {false, 10}, "8102": {false, 2},
		"8110": {true, 70}, "8111": {false, 4}, "8112": {true, 70},
		"8200": {true, 70},
	}
}

// ParseGS1Fields splits a raw GS1 element string into its application
// identifier fields and re-emits them with the AIs parenthesized:
// "019912..." becomes "(01)9912...". Unknown identifiers fail with the
// not-found error.
func ParseGS1Fields(rawInformation string) (string, error) {
	if rawInformation == "" {
		return "", nil
	}
	if len(rawInformation) < 2 {
		return "", gridscan.ErrNotFound
	}

	if dl, ok := twoDigitAIs[rawInformation[:2]]; ok {
		return emitAI(2, dl, rawInformation)
	}

	if len(rawInformation) < 3 {
		return "", gridscan.ErrNotFound
	}
	first3 := rawInformation[:3]
	if dl, ok := threeDigitAIs[first3]; ok {
		return emitAI(3, dl, rawInformation)
	}

	if len(rawInformation) < 4 {
		return "", gridscan.ErrNotFound
	}
	// 3-digit AIs carrying a decimal-point digit as their fourth character
	if dl, ok := threeDigitPlusAIs[first3]; ok {
		return emitAI(4, dl, rawInformation)
	}
	if dl, ok := fourDigitAIs[rawInformation[:4]]; ok {
		return emitAI(4, dl, rawInformation)
	}

	return "", gridscan.ErrNotFound
}

// emitAI formats one AI and its data field, then recurses on the rest of
// the element string. A fixed-length field must be fully present; a
// variable-length field takes whatever remains up to its maximum.
func emitAI(aiSize int, dl aiLength, rawInformation string) (string, error) {
	fieldEnd := aiSize + dl.length
	if dl.variable {
		if fieldEnd > len(rawInformation) {
			fieldEnd = len(rawInformation)
		}
	} else if fieldEnd > len(rawInformation) {
		return "", gridscan.ErrNotFound
	}

	result := "(" + rawInformation[:aiSize] + ")" + rawInformation[aiSize:fieldEnd]
	rest, err := ParseGS1Fields(rawInformation[fieldEnd:])
	if err != nil {
		return "", err
	}
	return result + rest, nil
}
