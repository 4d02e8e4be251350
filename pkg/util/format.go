package util

import (
	"strconv"
	"text/template"
)

// PromptFuncs are the helpers available to prompt templates.
var PromptFuncs = template.FuncMap{
	"num": FormatNumber,
}

// FormatNumber prints v without trailing zeros or exponent, e.g. 70, 72.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
