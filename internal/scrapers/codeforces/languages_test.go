package codeforces

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLanguageId(t *testing.T) {
	cases := []struct {
		label string
		id    string
		known bool
	}{
		{label: LanguageCpp17, id: "54", known: true},
		{label: LanguagePython3, id: "31", known: true},
		{label: "  " + LanguageJava11 + " ", id: "60", known: true},
		{label: LanguageNodeJs, id: "55", known: true},
		{label: "Brainfuck", id: DefaultLanguageId, known: false},
		{label: "", id: DefaultLanguageId, known: false},
	}
	for _, test := range cases {
		t.Run(test.label, func(t *testing.T) {
			id, known := LanguageId(test.label)
			require.Equal(t, test.id, id)
			require.Equal(t, test.known, known)
		})
	}
}

func TestLanguages(t *testing.T) {
	labels := Languages()
	require.Len(t, labels, len(languageIds))
	require.IsNonDecreasing(t, labels)
	for _, label := range labels {
		_, known := LanguageId(label)
		require.True(t, known, label)
	}
}

func TestLanguageFromExtension(t *testing.T) {
	cases := map[string]string{
		"4A_watermelon.cpp": LanguageCpp17,
		"main.CC":           LanguageCpp17,
		"solution.py":       LanguagePython3,
		"Main.java":         LanguageJava11,
		"a.c":               LanguageC11,
		"index.js":          LanguageNodeJs,
		"notes.txt":         "",
		"Makefile":          "",
	}
	for filename, expected := range cases {
		require.Equal(t, expected, LanguageFromExtension(filename), filename)
	}
}
