package record

import (
	"regexp"
	"strings"
)

// formatCmdRe matches LaTeX formatting commands whose argument should be
// kept: \textit{...}, \textbf{...}, \emph{...}.
var formatCmdRe = regexp.MustCompile(`\\(?:textit|textbf|emph)\{([^}]*)\}`)

// accentReplacer decodes the accent commands and escapes that DBLP and
// common BibTeX exports actually emit.
var accentReplacer = strings.NewReplacer(
	`\"a`, "ä", `\"o`, "ö", `\"u`, "ü", `\"A`, "Ä", `\"O`, "Ö", `\"U`, "Ü",
	`\'a`, "á", `\'e`, "é", `\'i`, "í", `\'o`, "ó", `\'u`, "ú",
	"\\`a", "à", "\\`e", "è", "\\`i", "ì", "\\`o", "ò", "\\`u", "ù",
	`\^a`, "â", `\^e`, "ê", `\^i`, "î", `\^o`, "ô", `\^u`, "û",
	`\~n`, "ñ", `\~a`, "ã", `\~o`, "õ",
	`\c{c}`, "ç", `\c{C}`, "Ç",
	`\ss`, "ß",
	`\&`, "&", `\%`, "%", `\$`, "$", `\#`, "#", `\_`, "_",
)

// CleanField normalizes a raw BibTeX field value: strips protective
// braces, decodes common accent commands and escapes, and collapses
// whitespace.
func CleanField(field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}

	// Outer protective braces: {The Whole Value}
	if strings.HasPrefix(field, "{") && strings.HasSuffix(field, "}") {
		field = field[1 : len(field)-1]
	}

	field = formatCmdRe.ReplaceAllString(field, "$1")
	field = accentReplacer.Replace(field)

	// Remaining braces protect capitalization only; drop them.
	field = strings.ReplaceAll(field, "{", "")
	field = strings.ReplaceAll(field, "}", "")

	return strings.Join(strings.Fields(field), " ")
}
