// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Language is the canonical counter key of a supported programming language.
type Language string

// Supported counter keys.
const (
	Python    Language = "py"
	JS        Language = "js"
	HtmlJsCss Language = "HtmlJsCss"
	C         Language = "c"
	CPP       Language = "cpp"
	Java      Language = "java"
	CSharp    Language = "cs"
	Rust      Language = "rust"
	Go        Language = "go"
	PHP       Language = "php"
)

// Languages lists every supported key in a stable order.
var Languages = []Language{Python, JS, HtmlJsCss, C, CPP, Java, CSharp, Rust, Go, PHP}

// languageKeys maps the free-text language names sent by the playground
// frontend to their counter keys. Lookups are case-sensitive.
var languageKeys = map[string]Language{
	"python":     Python,
	"javascript": JS,
	"HtmlJsCss":  HtmlJsCss,
	"c":          C,
	"c++":        CPP,
	"java":       Java,
	"c#":         CSharp,
	"rust":       Rust,
	"go":         Go,
	"php":        PHP,
}

// LanguageFromName resolves a frontend language name to its counter key.
func LanguageFromName(name string) (Language, bool) {
	lang, ok := languageKeys[name]
	return lang, ok
}

// IsSupported reports whether l is one of the canonical counter keys.
func (l Language) IsSupported() bool {
	for _, lang := range Languages {
		if lang == l {
			return true
		}
	}
	return false
}

// CounterKind identifies one of the three per-user tallies.
type CounterKind string

const (
	RunCode      CounterKind = "run"
	GenerateCode CounterKind = "generate"
	RefactorCode CounterKind = "refactor"
)

// CounterKinds lists every kind in a stable order.
var CounterKinds = []CounterKind{RunCode, GenerateCode, RefactorCode}

// Field returns the document field name that stores the counters of k.
func (k CounterKind) Field() string {
	switch k {
	case RunCode:
		return "runCodeCount"
	case GenerateCode:
		return "generateCodeCount"
	case RefactorCode:
		return "refactorCodeCount"
	default:
		return ""
	}
}

// Counters is a per-language tally.
type Counters map[Language]int64

// NewCounters returns a mapping holding zero for every supported language.
func NewCounters() Counters {
	c := make(Counters, len(Languages))
	for _, lang := range Languages {
		c[lang] = 0
	}
	return c
}

// Usage groups the three counter mappings of a user.
type Usage struct {
	RunCodeCount      Counters `json:"runCodeCount"`
	GenerateCodeCount Counters `json:"generateCodeCount"`
	RefactorCodeCount Counters `json:"refactorCodeCount"`
}
