package application

import (
	"errors"
	"fmt"
)

// Locale selects the language of user-facing text.
type Locale string

// Supported locales.
const (
	LocaleEnglish    Locale = "en"
	LocalePortuguese Locale = "pt-BR"
)

// ParseLocale validates s as a supported locale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleEnglish, LocalePortuguese:
		return Locale(s), nil
	default:
		return "", fmt.Errorf("unsupported locale %q (must be %q or %q)", s, LocaleEnglish, LocalePortuguese)
	}
}

// Messages holds the user-facing strings for one locale.
type Messages struct {
	Title           string
	Subtitle        string
	Placeholder     string
	Search          string
	EmptyIdentifier string
	LookupFailed    string
	NoRepositories  string
	Stars           string
	Forks           string
	OpenIssues      string
	Back            string
	Previous        string
	Next            string
	Page            string
	OpenFailed      string
	NoIssues        string
}

var catalog = map[Locale]Messages{
	LocaleEnglish: {
		Title:           "GitHub Explorer",
		Subtitle:        "Explore repositories on GitHub",
		Placeholder:     "Type the repository owner/name",
		Search:          "Search",
		EmptyIdentifier: "Type the repository owner/name",
		LookupFailed:    "Repository lookup failed",
		NoRepositories:  "No repositories yet",
		Stars:           "Stars",
		Forks:           "Forks",
		OpenIssues:      "Open issues",
		Back:            "Back",
		Previous:        "Previous",
		Next:            "Next",
		Page:            "Page",
		OpenFailed:      "Could not open the issue in a browser",
		NoIssues:        "No issues on this page",
	},
	LocalePortuguese: {
		Title:           "GitHub Explorer",
		Subtitle:        "Explore repositórios no Github",
		Placeholder:     "Digite o autor/nome do repositório",
		Search:          "Pesquisar",
		EmptyIdentifier: "Digite o autor/nome do repositório",
		LookupFailed:    "Erro na busca do repositório",
		NoRepositories:  "Nenhum repositório ainda",
		Stars:           "Stars",
		Forks:           "Forks",
		OpenIssues:      "Issues abertas",
		Back:            "Voltar",
		Previous:        "Anterior",
		Next:            "Próxima",
		Page:            "Página",
		OpenFailed:      "Não foi possível abrir a issue no navegador",
		NoIssues:        "Nenhuma issue nesta página",
	},
}

// MessagesFor returns the strings for locale, falling back to English.
func MessagesFor(locale Locale) Messages {
	if msgs, ok := catalog[locale]; ok {
		return msgs
	}
	return catalog[LocaleEnglish]
}

// ErrorMessage maps a RepositoryList error to its inline text. A nil error maps
// to the empty string; unknown errors fall back to the lookup failure text.
func ErrorMessage(err error, msgs Messages) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyIdentifier):
		return msgs.EmptyIdentifier
	default:
		return msgs.LookupFailed
	}
}
