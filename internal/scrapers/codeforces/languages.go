package codeforces

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLanguageId is the programTypeId of GNU G++17, it is used for any
// language label the table does not know since the form needs some valid id.
const DefaultLanguageId = "54"

const (
	LanguageCpp17   = "GNU G++17 7.3.0"
	LanguageCpp14   = "GNU G++14 6.4.0"
	LanguageCpp11   = "GNU G++11 5.1.0"
	LanguageC11     = "GNU GCC C11 5.1.0"
	LanguagePython3 = "Python 3.8.10"
	LanguagePython2 = "Python 2.7.18"
	LanguageJava11  = "Java 11.0.6"
	LanguageJava8   = "Java 8"
	LanguageNodeJs  = "Node.js 12.16.3"
)

var languageIds = map[string]string{
	LanguageCpp17:   "54",
	LanguageCpp14:   "50",
	LanguageCpp11:   "42",
	LanguageC11:     "43",
	LanguagePython3: "31",
	LanguagePython2: "7",
	LanguageJava11:  "60",
	LanguageJava8:   "36",
	LanguageNodeJs:  "55",
}

var extensionLanguages = map[string]string{
	".cpp":  LanguageCpp17,
	".cc":   LanguageCpp17,
	".cxx":  LanguageCpp17,
	".c":    LanguageC11,
	".py":   LanguagePython3,
	".py3":  LanguagePython3,
	".java": LanguageJava11,
	".js":   LanguageNodeJs,
	".ts":   LanguageNodeJs,
}

// LanguageId maps a language label to its programTypeId, known reports
// whether the label was in the table.
func LanguageId(label string) (id string, known bool) {
	id, known = languageIds[strings.TrimSpace(label)]
	if !known {
		return DefaultLanguageId, false
	}
	return id, true
}

// Languages returns every known language label in a stable order.
func Languages() []string {
	out := make([]string, 0, len(languageIds))
	for label := range languageIds {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// LanguageFromExtension guesses the language label of a source file, it
// returns an empty string for unknown extensions.
func LanguageFromExtension(filename string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(filename))]
}
