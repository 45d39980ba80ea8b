package interview

import (
	"fmt"

	"github.com/bkrawczyk/cv-coach/pkg/domain"
)

// questionTemplates hold the generic wording per fact kind; %s is the role title.
var questionTemplates = map[FactKind]string{
	KindActions: "Jakie konkretne zadania wykonywałeś/aś na stanowisku %s? Wymień 3–5 najważniejszych czynności.",
	KindScale:   "Jaka była skala Twojej pracy jako %s? Podaj liczby: ile zadań, klientów lub projektów miesięcznie, jak duży zespół lub budżet.",
	KindProcess: "Jak krok po kroku wyglądał Twój proces pozyskiwania klientów w roli %s? Skąd brały się kontakty (polecenia, cold calling, marketing)?",
	KindResult:  "Jaki mierzalny wynik osiągnąłeś/aś jako %s? Np. realizacja planu w procentach, wzrost sprzedaży, oszczędność czasu lub kosztów.",
	KindContext: "Do czego można porównać ten wynik z roli %s? Np. poziom sprzed roku, średnia zespołu albo cel, który dostałeś/aś.",
}

// domainQuestionTemplates override the generic wording where the domain has
// its own vocabulary.
var domainQuestionTemplates = map[domain.Domain]map[FactKind]string{
	domain.Sales: {
		KindActions: "Co konkretnie robiłeś/aś w sprzedaży na stanowisku %s? Np. pozyskiwanie klientów, prezentacje, negocjacje, obsługa posprzedażowa.",
		KindScale:   "Jaka była skala Twojej sprzedaży jako %s? Ilu klientów obsługiwałeś/aś, ile rozmów lub spotkań miesięcznie, jaka wartość transakcji?",
		KindResult:  "Jaki wynik sprzedażowy osiągnąłeś/aś jako %s? Np. procent realizacji planu, wartość sprzedaży, liczba pozyskanych klientów.",
	},
	domain.ECommerce: {
		KindScale:  "Jaka była skala sklepu, przy którym pracowałeś/aś jako %s? Liczba zamówień miesięcznie, wielkość asortymentu, ruch na stronie?",
		KindResult: "Jaki mierzalny efekt osiągnąłeś/aś jako %s? Np. wzrost konwersji, wartości koszyka albo przychodu sklepu.",
	},
	domain.Marketing: {
		KindScale:  "Jaka była skala Twoich działań marketingowych jako %s? Budżety kampanii, liczba kampanii, zasięgi, wielkość bazy?",
		KindResult: "Jaki mierzalny efekt przyniosły Twoje działania jako %s? Np. wzrost leadów, CTR, konwersji lub zasięgów.",
	},
	domain.CustomerSupport: {
		KindScale:  "Jaka była skala obsługi na stanowisku %s? Ile zgłoszeń, rozmów lub klientów dziennie albo miesięcznie?",
		KindResult: "Jaki mierzalny wynik osiągnąłeś/aś jako %s? Np. czas reakcji, ocena satysfakcji, procent rozwiązanych zgłoszeń.",
	},
	domain.Engineering: {
		KindScale:  "Jaka była skala systemów, przy których pracowałeś/aś jako %s? Liczba użytkowników, wielkość zespołu, liczba wdrożeń?",
		KindResult: "Jaki mierzalny efekt miała Twoja praca jako %s? Np. skrócenie czasu wdrożeń, mniej błędów, szybsze działanie systemu.",
	},
}

// Question renders the localized interview question for a fact kind.
func Question(kind FactKind, d domain.Domain, roleTitle string) (question string) {
	template := questionTemplates[kind]
	if overrides, ok := domainQuestionTemplates[d]; ok {
		if override, ok := overrides[kind]; ok {
			template = override
		}
	}
	question = fmt.Sprintf(template, roleTitle)
	return question
}
