package classifier

// sentimentLexicon scores accent-folded lowercase tokens, AFINN style.
var sentimentLexicon = map[string]int{
	// positive
	"otimo":        3,
	"otima":        3,
	"excelente":    3,
	"perfeito":     3,
	"perfeita":     3,
	"impecavel":    3,
	"lindo":        3,
	"linda":        3,
	"bom":          3,
	"boa":          3,
	"top":          2,
	"conservado":   2,
	"conservada":   2,
	"funcionando":  2,
	"revisado":     2,
	"revisada":     2,
	"garantia":     2,
	"oportunidade": 2,
	"barato":       2,
	"raro":         2,
	"great":        3,
	"excellent":    3,
	"perfect":      3,
	"good":         3,
	"nice":         3,
	"amazing":      4,
	"best":         3,
	"mint":         2,

	// negative
	"defeito":    -3,
	"defeitos":   -3,
	"quebrado":   -3,
	"quebrada":   -3,
	"ruim":       -3,
	"estragado":  -3,
	"estragada":  -3,
	"danificado": -3,
	"danificada": -3,
	"queimado":   -3,
	"queimada":   -3,
	"trincado":   -3,
	"trincada":   -3,
	"sucata":     -3,
	"problema":   -2,
	"problemas":  -2,
	"riscado":    -2,
	"riscada":    -2,
	"broken":     -3,
	"bad":        -3,
	"damaged":    -3,
	"faulty":     -3,
	"poor":       -2,
	"worst":      -3,
}

var (
	newPhrases = []string{
		"novo", "nova", "novos", "novas", "lacrado", "lacrada", "na caixa",
		"nunca usado", "nunca usada", "sem uso", "zero km", "0km", "brand new", "sealed",
	}
	defectPhrases = []string{
		"defeito", "defeitos", "com defeito", "danificado", "danificada", "quebrado", "quebrada",
		"ruim", "estragado", "estragada", "nao liga", "queimado", "queimada", "para pecas",
		"retirada de pecas", "broken", "faulty", "for parts",
	}
	goodPhrases = []string{
		"bom estado", "otimo estado", "perfeito estado", "excelente estado", "conservado",
		"conservada", "impecavel", "revisado", "revisada", "seminovo", "seminova",
		"good condition", "mint condition",
	}
)
