// Package domain maps a role's title and body to a coarse occupational domain,
// used to localize interview question vocabulary.
package domain

import (
	"strings"
)

// Domain is a coarse occupational category.
type Domain string

// Recognized domains, most specific first. Generic is the fallback.
const (
	ECommerce         Domain = "e-commerce"
	Sales             Domain = "sales"
	Marketing         Domain = "marketing"
	QA                Domain = "qa"
	Engineering       Domain = "engineering"
	ProjectManagement Domain = "project-management"
	CustomerSupport   Domain = "customer-support"
	Administrative    Domain = "administrative"
	Generic           Domain = "generic"
)

// priority orders matching from most to least specific: "test engineer" must
// land in qa before engineering, "e-commerce manager" in e-commerce before
// sales.
var priority = []Domain{
	ECommerce,
	QA,
	Sales,
	Marketing,
	ProjectManagement,
	Engineering,
	CustomerSupport,
	Administrative,
}

var vocabulary = map[Domain][]string{
	ECommerce: {
		"e-commerce", "ecommerce", "sklep internetow", "sklepu internetow",
		"allegro", "amazon", "marketplace", "magento", "shopify", "prestashop",
		"koszyk", "platforma sprzedażow", "platforma sprzedazow",
	},
	QA: {
		"tester", "quality assurance", " qa", "qa ", "testów", "testow",
		"test engineer", "inżynier testów", "inzynier testow",
		"automatyzacja testów", "automatyzacja testow", "selenium", "test plan",
	},
	Sales: {
		"sprzedaż", "sprzedaz", "handlow", "sales", "account manager",
		"przedstawiciel", "doradca klienta", "business development",
		"key account", "akwizycj", "telemarket", "b2b", "b2c",
	},
	Marketing: {
		"marketing", "seo", "sem", "social media", "kampani", "content",
		"brand", "performance", "google ads", "facebook ads", "copywrit",
		"e-mail marketing", "newsletter",
	},
	ProjectManagement: {
		"project manager", "kierownik projekt", "zarządzanie projekt",
		"zarzadzanie projekt", "scrum master", "product owner", "pmo",
		"harmonogram", "agile", "prince2",
	},
	Engineering: {
		"programista", "developer", "inżynier", "inzynier", "engineer",
		"devops", "software", "backend", "frontend", "fullstack",
		"architekt", "administrator system", "sysadmin", "bazy danych",
	},
	CustomerSupport: {
		"obsługa klienta", "obsluga klienta", "customer support", "helpdesk",
		"help desk", "call center", "infolini", "biuro obsługi",
		"biuro obslugi", "reklamacj", "support",
	},
	Administrative: {
		"asystent", "administracyj", "biurow", "office manager", "sekretar",
		"recepcj", "kadry", "dokumentacj", "archiwizacj",
	},
}

// Classify maps a role to a domain. Title vocabulary takes precedence over
// body vocabulary; within each, the most specific domain wins.
func Classify(title, body string) (d Domain) {
	titleLower := strings.ToLower(title)
	for _, candidate := range priority {
		if containsAny(titleLower, vocabulary[candidate]) {
			return candidate
		}
	}

	bodyLower := strings.ToLower(body)
	for _, candidate := range priority {
		if containsAny(bodyLower, vocabulary[candidate]) {
			return candidate
		}
	}

	d = Generic
	return d
}

var acquisitionVocabulary = []string{
	"lead", "leadów", "leadow", "leady", "outbound", "inbound", "pipeline",
	"negocjacj", "pozyskiwanie", "pozyskuj", "pozyskiwał", "pozyskiwal",
	"prospecting", "cold call", "cold mail", "zimne telefony", "akwizycj",
	"nowych klientów", "nowych klientow",
}

var acquisitionDisclaimers = []string{
	"nie pozyskuj", "nie pozyskiwał", "nie pozyskiwal", "bez pozyskiwania",
	"nie sprzedaj", "bez sprzedaży", "bez sprzedazy",
	"nie zajmuję się sprzedażą", "nie zajmuje sie sprzedaza",
	"no direct sales", "not responsible for sales",
}

// AcquisitionRelevant reports whether the acquisition-process fact should be
// interviewed for this role: only commercial domains whose text mentions
// acquisition channels, with no explicit disclaimer of direct selling.
func AcquisitionRelevant(d Domain, text string) (relevant bool) {
	if d != Sales && d != Marketing && d != ECommerce {
		return false
	}
	lower := strings.ToLower(text)
	if containsAny(lower, acquisitionDisclaimers) {
		return false
	}
	relevant = containsAny(lower, acquisitionVocabulary)
	return relevant
}

func containsAny(haystack string, needles []string) (ok bool) {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
